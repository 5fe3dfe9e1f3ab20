package main

import (
	"errors"
	"os"

	matchtype "github.com/alnah/go-matchtype"
	"github.com/alnah/go-matchtype/internal/config"
	"github.com/alnah/go-matchtype/internal/hints"
	"github.com/alnah/go-matchtype/internal/report"
)

// Exit codes for the matchtype CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or environment
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitRejected = 5 // Input too large or rate limited
	ExitInvalid  = 6 // Invalid keywords with --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, matchtype.ErrOversizedInput) ||
		errors.Is(err, matchtype.ErrRateLimited) {
		return ExitRejected
	}

	if errors.Is(err, ErrInvalidKeywords) {
		return ExitInvalid
	}

	if errors.Is(err, report.ErrBrowserConnect) ||
		errors.Is(err, report.ErrPageCreate) ||
		errors.Is(err, report.ErrPageLoad) ||
		errors.Is(err, report.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Checked before I/O: a missing config is a usage problem.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, matchtype.ErrUnknownMatchType) ||
		errors.Is(err, report.ErrUnknownFormat) ||
		errors.Is(err, report.ErrUnknownPage) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrEnvConfig) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintError attaches a hint computed where more context is known, such as
// the configured limit or the config search paths.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

// withHint wraps err with a hint. A nil err stays nil.
func withHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintError{err: err, hint: hint}
}

// hintFor returns actionable hints for known errors, or "".
func hintFor(err error) string {
	var h *hintError
	if errors.As(err, &h) {
		return h.hint
	}

	switch {
	case errors.Is(err, matchtype.ErrOversizedInput):
		return hints.ForOversizedInput(matchtype.DefaultMaxInputLength)
	case errors.Is(err, matchtype.ErrRateLimited):
		return hints.ForRateLimited()
	case errors.Is(err, matchtype.ErrUnknownMatchType):
		return hints.ForUnknownMatchType()
	case errors.Is(err, ErrInvalidKeywords):
		return hints.ForStrictInvalid()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, report.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
