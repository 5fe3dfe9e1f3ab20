package matchtype

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-matchtype/internal/keyword"
)

// MatchType is a keyword notation: broad, phrase or exact.
type MatchType = keyword.Type

// Match types.
const (
	Broad  = keyword.Broad
	Phrase = keyword.Phrase
	Exact  = keyword.Exact
)

// MatchTypes lists every match type in display order.
var MatchTypes = keyword.Types

// ParseMatchType parses "broad", "phrase" or "exact" (case-insensitive).
func ParseMatchType(name string) (MatchType, error) {
	return keyword.ParseType(name)
}

// ErrorKind classifies an invalid keyword.
type ErrorKind = keyword.ErrorKind

// Validation failures.
const (
	NoError          = keyword.NoError
	TooLong          = keyword.TooLong
	InvalidChar      = keyword.InvalidChar
	EmbeddedNotation = keyword.EmbeddedNotation
	Empty            = keyword.Empty
)

// Default limits.
const (
	DefaultMaxInputLength = keyword.DefaultMaxInputLength
	DefaultMaxKeywords    = keyword.DefaultMaxKeywords
	DefaultCooldown       = 100 * time.Millisecond
	MaxKeywordLength      = keyword.MaxKeywordLength
)

// Input contains conversion parameters.
type Input struct {
	Text   string    // Raw keyword list, comma or newline separated
	Target MatchType // Notation to convert to (zero value = Broad)
}

// Summary holds the counts of one conversion run.
type Summary struct {
	KeywordCount   int `json:"keywordCount" yaml:"keywordCount"`     // Unique keywords in the output
	DuplicateCount int `json:"duplicateCount" yaml:"duplicateCount"` // Valid tokens dropped as repeats
	InvalidCount   int `json:"invalidCount" yaml:"invalidCount"`     // Tokens that failed validation
}

// ValidationResult reports the outcome for one input token.
type ValidationResult struct {
	Original string    `json:"original" yaml:"original"`
	Detected MatchType `json:"detected" yaml:"detected"`
	Valid    bool      `json:"valid" yaml:"valid"`
	Kind     ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Char     string    `json:"char,omitempty" yaml:"char,omitempty"` // Offending character for InvalidChar
	Message  string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result is the output of a successful conversion.
type Result struct {
	RunID       string             `json:"runId" yaml:"runId"`
	Target      MatchType          `json:"target" yaml:"target"`
	Keywords    []string           `json:"keywords" yaml:"keywords"`
	Summary     Summary            `json:"summary" yaml:"summary"`
	Validations []ValidationResult `json:"validations" yaml:"validations"`
	TokenCount  int                `json:"tokenCount" yaml:"tokenCount"`
	Truncated   bool               `json:"truncated" yaml:"truncated"`   // Tokens beyond MaxKeywords were dropped
	NoKeywords  bool               `json:"noKeywords" yaml:"noKeywords"` // Input was blank
	MaxKeywords int                `json:"-" yaml:"-"`
}

// Text returns the converted keywords joined by newlines.
func (r *Result) Text() string {
	return strings.Join(r.Keywords, "\n")
}

// Warning returns a non-nil error wrapping ErrTooManyKeywords when the
// input was truncated. Truncation does not fail the conversion.
func (r *Result) Warning() error {
	if !r.Truncated {
		return nil
	}
	return fmt.Errorf("%w: only the first %d were processed", ErrTooManyKeywords, r.MaxKeywords)
}

// Invalid returns the validation results of rejected tokens, in input order.
func (r *Result) Invalid() []ValidationResult {
	var out []ValidationResult
	for _, v := range r.Validations {
		if !v.Valid {
			out = append(out, v)
		}
	}
	return out
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the limits of a Converter.
type converterConfig struct {
	maxInputLength int
	maxKeywords    int
	cooldown       time.Duration
}

// WithMaxInputLength sets the maximum input length in characters.
// Panics if n <= 0 (programmer error).
func WithMaxInputLength(n int) Option {
	if n <= 0 {
		panic("matchtype: WithMaxInputLength must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxInputLength = n
	}
}

// WithMaxKeywords sets how many tokens are processed per request.
// Panics if n <= 0 (programmer error).
func WithMaxKeywords(n int) Option {
	if n <= 0 {
		panic("matchtype: WithMaxKeywords must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxKeywords = n
	}
}

// WithCooldown sets the minimum delay between two accepted conversions.
// Zero disables rate limiting. Panics if d < 0.
func WithCooldown(d time.Duration) Option {
	if d < 0 {
		panic("matchtype: WithCooldown must not be negative")
	}
	return func(c *Converter) {
		c.cfg.cooldown = d
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("matchtype: WithClock requires a non-nil function")
	}
	return func(c *Converter) {
		c.now = now
	}
}

// WithLogger sets the logger used for run diagnostics. Without it the
// logger carried by the Convert context is used.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
