package keyword

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxKeywordLength is the longest bare keyword accepted, in characters.
const MaxKeywordLength = 100

// Blacklist holds the characters a bare keyword may not contain, in scan
// order. When a keyword holds several of them, the earliest entry of this
// list is reported.
var Blacklist = []rune{'!', '@', '%', '"', '(', ')', '=', '{', '}', ';', '~', '`', '<', '>', '?', '\\', '|'}

// notationChars are wrapper characters left inside a keyword after detection.
const notationChars = `"[]`

// ErrorKind classifies why a bare keyword failed validation.
type ErrorKind int

// Validation failures, in the order the rules are checked.
const (
	NoError ErrorKind = iota
	TooLong
	InvalidChar
	EmbeddedNotation
	Empty
)

// String returns a stable identifier for the kind.
func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "none"
	case TooLong:
		return "too_long"
	case InvalidChar:
		return "invalid_char"
	case EmbeddedNotation:
		return "embedded_notation"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Verdict is the outcome of validating one bare keyword.
// Char is set only when Kind is InvalidChar.
type Verdict struct {
	Valid bool
	Kind  ErrorKind
	Char  rune
}

// Message returns a human-readable description of the verdict.
func (v Verdict) Message() string {
	switch v.Kind {
	case NoError:
		return ""
	case TooLong:
		return fmt.Sprintf("Keyword too long (max %d characters)", MaxKeywordLength)
	case InvalidChar:
		return "Contains invalid character: " + string(v.Char)
	case EmbeddedNotation:
		return "Contains match type signifiers within keyword"
	case Empty:
		return "Empty keyword after cleaning"
	default:
		return "Invalid keyword"
	}
}

// Validate checks a bare keyword. Rules run in order and the first failure
// wins: length, blacklist, embedded notation, emptiness.
func Validate(bare string) Verdict {
	if utf8.RuneCountInString(bare) > MaxKeywordLength {
		return Verdict{Kind: TooLong}
	}

	for _, c := range Blacklist {
		if strings.ContainsRune(bare, c) {
			return Verdict{Kind: InvalidChar, Char: c}
		}
	}

	if strings.ContainsAny(bare, notationChars) {
		return Verdict{Kind: EmbeddedNotation}
	}

	if strings.TrimSpace(bare) == "" {
		return Verdict{Kind: Empty}
	}

	return Verdict{Valid: true}
}
