package matchtype

import (
	"errors"

	"github.com/alnah/go-matchtype/internal/keyword"
)

// Sentinel errors for library operations.
var (
	ErrOversizedInput = errors.New("input too large")
	ErrRateLimited    = errors.New("conversion requested too soon")

	// ErrTooManyKeywords is not returned by Convert. Result.Warning wraps it
	// when the token list was truncated.
	ErrTooManyKeywords = errors.New("too many keywords")

	// ErrUnknownMatchType is returned by ParseMatchType.
	ErrUnknownMatchType = keyword.ErrUnknownType
)
