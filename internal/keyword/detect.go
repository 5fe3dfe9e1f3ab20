package keyword

import (
	"regexp"
	"strings"
)

// broadSuffix matches the legacy " (broad)" marker at the end of a token.
var broadSuffix = regexp.MustCompile(`(?i)\s*\(broad\)\s*$`)

// Detected is a token with its match-type notation removed.
type Detected struct {
	Type Type
	Bare string
}

// Detect sanitizes a token and infers its match type from its wrapper.
// "[kw]" is exact, "\"kw\"" is phrase, anything else is broad. A trailing
// "(broad)" marker is dropped first. Wrappers need at least two characters,
// so a lone "[" or "\"" stays broad.
func Detect(token string) Detected {
	clean := broadSuffix.ReplaceAllString(Sanitize(token), "")

	if len(clean) >= 2 {
		switch {
		case strings.HasPrefix(clean, "[") && strings.HasSuffix(clean, "]"):
			return Detected{Type: Exact, Bare: clean[1 : len(clean)-1]}
		case strings.HasPrefix(clean, `"`) && strings.HasSuffix(clean, `"`):
			return Detected{Type: Phrase, Bare: clean[1 : len(clean)-1]}
		}
	}

	return Detected{Type: Broad, Bare: clean}
}
