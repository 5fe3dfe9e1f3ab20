// Package matchtype converts advertising keyword lists between match-type
// notations.
//
// # Quick Start
//
// Create a converter once and reuse it for every request:
//
//	conv := matchtype.NewConverter()
//
//	result, err := conv.Convert(ctx, matchtype.Input{
//	    Text:   "running shoes, [red shoes], \"blue shoes\"",
//	    Target: matchtype.Exact,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text())
//
// # Notations
//
// Three match types are recognised:
//
//	broad    running shoes
//	phrase   "running shoes"
//	exact    [running shoes]
//
// A trailing "(broad)" marker is accepted and dropped on input.
//
// # Conversion Pipeline
//
// Each request goes through these stages:
//
//  1. Tokenizing on commas and newlines, bounded by WithMaxKeywords
//  2. Notation detection (after a sanitizing pass on every token)
//  3. Validation against length and character rules
//  4. Conversion to the target notation, deduplication and sorting
//
// Invalid keywords never abort a run. They are reported one by one in
// Result.Validations and counted in Result.Summary.
//
// # Rejected Requests
//
// Convert returns ErrOversizedInput when the text exceeds the configured
// maximum length, and ErrRateLimited when called again before the cooldown
// has elapsed. Both leave the previous result untouched:
//
//	conv := matchtype.NewConverter(
//	    matchtype.WithMaxInputLength(20000),
//	    matchtype.WithCooldown(250 * time.Millisecond),
//	)
//
// A Converter is not safe for concurrent use.
package matchtype
