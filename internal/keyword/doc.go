// Package keyword implements the keyword match-type conversion pipeline.
//
// The stages run strictly left to right:
//   - Tokenize splits raw input on commas and newlines
//   - Detect sanitizes a token and strips existing match-type notation
//   - Validate checks the bare keyword for length and forbidden characters
//   - Wrap re-applies the target notation to a valid bare keyword
//
// Aggregate chains Detect, Validate and Wrap over a token sequence and
// produces the deduplicated, sorted output with its counts. Every function
// here is pure; rate limiting and input limits are owned by the root
// matchtype package.
package keyword
