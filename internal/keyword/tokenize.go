package keyword

import (
	"strings"
	"unicode/utf8"
)

// Default limits applied by the root converter.
const (
	DefaultMaxInputLength = 10000
	DefaultMaxKeywords    = 1000
)

// Tokenize splits raw input into trimmed, non-empty tokens.
//
// Input longer than maxLength characters is rejected as a whole: oversized is
// true and no tokens are returned. When more than maxCount tokens remain, the
// first maxCount are kept and truncated is true. Token order follows the input.
func Tokenize(raw string, maxLength, maxCount int) (tokens []string, truncated, oversized bool) {
	if utf8.RuneCountInString(raw) > maxLength {
		return nil, false, true
	}

	pieces := strings.FieldsFunc(raw, isSeparator)
	tokens = make([]string, 0, len(pieces))
	for _, p := range pieces {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) > maxCount {
		return tokens[:maxCount], true, false
	}
	return tokens, false, false
}

func isSeparator(r rune) bool {
	return r == ',' || r == '\n'
}
