package keyword

import (
	"regexp"
	"strings"
)

// Precompiled patterns for markup that must never survive into a keyword.
var (
	scriptBlock   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	javascriptURI = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize removes script blocks, javascript: URI prefixes and inline event
// handler attributes (on<word>=) from a token, then trims surrounding
// whitespace. Matching is case-insensitive.
func Sanitize(token string) string {
	token = scriptBlock.ReplaceAllString(token, "")
	token = javascriptURI.ReplaceAllString(token, "")
	token = eventHandler.ReplaceAllString(token, "")
	return strings.TrimSpace(token)
}
