package matchtype

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-matchtype/internal/keyword"
	"github.com/alnah/go-matchtype/internal/logger"
)

// Converter runs the keyword pipeline with fixed limits and a cooldown
// between requests. Create with NewConverter and reuse it; the only state
// kept between calls is the time of the last accepted conversion.
type Converter struct {
	cfg    converterConfig
	now    func() time.Time
	logger *zap.Logger
	last   time.Time
}

// NewConverter creates a Converter with default limits
// (10,000 characters, 1000 keywords, 100ms cooldown).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			maxInputLength: DefaultMaxInputLength,
			maxKeywords:    DefaultMaxKeywords,
			cooldown:       DefaultCooldown,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MaxInputLength returns the configured input limit in characters.
func (c *Converter) MaxInputLength() int { return c.cfg.maxInputLength }

// MaxKeywords returns the configured keyword limit.
func (c *Converter) MaxKeywords() int { return c.cfg.maxKeywords }

// Convert tokenizes, validates and converts input.Text to input.Target.
//
// Blank input succeeds with an empty Result flagged NoKeywords and does not
// count towards the cooldown. A call made before the cooldown has elapsed
// returns ErrRateLimited without touching any state. Text longer than the
// input limit returns ErrOversizedInput and nothing is processed.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !input.Target.Valid() {
		input.Target = Broad
	}

	if c.logger != nil {
		ctx = logger.WithLogger(ctx, c.logger)
	}
	runID := uuid.NewString()
	ctx = logger.WithFields(ctx, zap.String("run_id", runID), zap.Stringer("target", input.Target))

	if strings.TrimSpace(input.Text) == "" {
		logger.Debug(ctx, "no keywords entered")
		return &Result{
			RunID:       runID,
			Target:      input.Target,
			Keywords:    []string{},
			Validations: []ValidationResult{},
			NoKeywords:  true,
			MaxKeywords: c.cfg.maxKeywords,
		}, nil
	}

	if err := c.throttle(); err != nil {
		logger.Debug(ctx, "conversion rejected", zap.Error(err))
		return nil, err
	}

	tokens, truncated, oversized := keyword.Tokenize(input.Text, c.cfg.maxInputLength, c.cfg.maxKeywords)
	if oversized {
		err := fmt.Errorf("%w: %d characters (max %d)",
			ErrOversizedInput, utf8.RuneCountInString(input.Text), c.cfg.maxInputLength)
		logger.Debug(ctx, "conversion rejected", zap.Error(err))
		return nil, err
	}

	outcome := keyword.Aggregate(tokens, input.Target)

	result = &Result{
		RunID:       runID,
		Target:      input.Target,
		Keywords:    outcome.Keywords,
		Validations: toValidationResults(outcome.Records),
		Summary: Summary{
			KeywordCount:   len(outcome.Keywords),
			DuplicateCount: outcome.DuplicateCount,
			InvalidCount:   outcome.InvalidCount,
		},
		TokenCount:  len(tokens),
		Truncated:   truncated,
		MaxKeywords: c.cfg.maxKeywords,
	}

	if truncated {
		logger.Warn(ctx, "keyword list truncated", zap.Int("max_keywords", c.cfg.maxKeywords))
	}
	if logger.IsDebug(ctx) {
		for _, v := range result.Invalid() {
			logger.Debug(ctx, "keyword rejected", zap.String("keyword", v.Original), zap.Stringer("kind", v.Kind))
		}
	}
	logger.Debug(ctx, "conversion finished",
		zap.Int("tokens", result.TokenCount),
		zap.Int("keywords", result.Summary.KeywordCount),
		zap.Int("duplicates", result.Summary.DuplicateCount),
		zap.Int("invalid", result.Summary.InvalidCount),
	)

	return result, nil
}

// throttle enforces the cooldown and records the call time when accepted.
func (c *Converter) throttle() error {
	now := c.now()
	if c.cfg.cooldown > 0 && !c.last.IsZero() {
		if elapsed := now.Sub(c.last); elapsed < c.cfg.cooldown {
			return fmt.Errorf("%w: wait %s", ErrRateLimited, (c.cfg.cooldown - elapsed).Round(time.Millisecond))
		}
	}
	c.last = now
	return nil
}

// toValidationResults converts internal records to the public type.
func toValidationResults(records []keyword.Record) []ValidationResult {
	out := make([]ValidationResult, len(records))
	for i, r := range records {
		out[i] = ValidationResult{
			Original: r.Original,
			Detected: r.Detected.Type,
			Valid:    r.Verdict.Valid,
			Kind:     r.Verdict.Kind,
			Message:  r.Verdict.Message(),
		}
		if r.Verdict.Kind == keyword.InvalidChar {
			out[i].Char = string(r.Verdict.Char)
		}
	}
	return out
}
