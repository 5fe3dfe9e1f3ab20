package keyword

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by ParseType for names outside broad/phrase/exact.
var ErrUnknownType = errors.New("unknown match type")

// Type is a keyword match type.
type Type int

// Match types. Broad is the zero value so an unset target converts to broad.
const (
	Broad Type = iota
	Phrase
	Exact
)

// Types lists every match type in display order.
var Types = []Type{Broad, Phrase, Exact}

// String returns the lower-case name of the match type.
func (t Type) String() string {
	switch t {
	case Broad:
		return "broad"
	case Phrase:
		return "phrase"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the three known match types.
func (t Type) Valid() bool {
	return t == Broad || t == Phrase || t == Exact
}

// ParseType parses a match type name (case-insensitive, surrounding
// whitespace ignored).
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "broad":
		return Broad, nil
	case "phrase":
		return Phrase, nil
	case "exact":
		return Exact, nil
	default:
		return Broad, fmt.Errorf("%w: %q (must be broad, phrase, or exact)", ErrUnknownType, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
