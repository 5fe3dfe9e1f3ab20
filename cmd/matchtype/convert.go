package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	matchtype "github.com/alnah/go-matchtype"
	"github.com/alnah/go-matchtype/internal/config"
	"github.com/alnah/go-matchtype/internal/fileutil"
	"github.com/alnah/go-matchtype/internal/hints"
	"github.com/alnah/go-matchtype/internal/logger"
	"github.com/alnah/go-matchtype/internal/report"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrReadInput       = errors.New("failed to read input")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrInvalidKeywords = errors.New("input contains invalid keywords")
	ErrPDFNeedsOutput  = errors.New("pdf output requires --output")
)

// runConvertCmd converts keywords read from files or stdin.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if flags.common.quiet && flags.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	cfg, err := loadConfig(flags.common.config, env.Stderr, flags.common.quiet)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	output := outputFile(resolveOutputPath(flags.output, cfg.Output.DefaultDir), format)
	if format.Binary() && output == "" {
		return fmt.Errorf("%w: %w", ErrUsage, ErrPDFNeedsOutput)
	}

	log, err := newLogger(cfg, flags.common)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	ctx = logger.WithLogger(ctx, log)

	conv, target, err := newConverter(cfg, log)
	if err != nil {
		return err
	}

	text, err := readInput(positional, env.Stdin)
	if err != nil {
		return err
	}

	res, err := conv.Convert(ctx, matchtype.Input{Text: text, Target: target})
	if err != nil {
		if errors.Is(err, matchtype.ErrOversizedInput) {
			return withHint(err, hints.ForOversizedInput(conv.MaxInputLength()))
		}
		return err
	}

	if w := res.Warning(); w != nil && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: %v%s\n", w, hints.ForTooManyKeywords(res.MaxKeywords))
	}

	if err := writeResult(ctx, env, res, format, output, cfg, flags.report); err != nil {
		return err
	}

	if cfg.Output.Copy && !res.NoKeywords {
		copyKeywords(ctx, env, res, flags.common.quiet)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "run %s: %d keywords, %d duplicates, %d invalid\n",
			res.RunID, res.Summary.KeywordCount, res.Summary.DuplicateCount, res.Summary.InvalidCount)
	}

	if cfg.Convert.Strict && res.Summary.InvalidCount > 0 {
		return fmt.Errorf("%w: %d of %d rejected", ErrInvalidKeywords, res.Summary.InvalidCount, res.TokenCount)
	}
	return nil
}

// mergeConvertFlags applies flags given on the command line over cfg.
func mergeConvertFlags(f *convertFlags, cfg *config.Config) {
	if f.set["to"] {
		cfg.Convert.Target = f.target
	}
	if f.set["strict"] {
		cfg.Convert.Strict = f.strict
	}
	if f.set["format"] {
		cfg.Output.Format = f.format
	}
	if f.set["copy"] {
		cfg.Output.Copy = f.copy
	}
	if f.set["title"] {
		cfg.Report.Title = f.doc.title
	}
	if f.set["page-size"] {
		cfg.Report.PageSize = f.doc.pageSize
	}
	mergeLimitFlags(f.limits, f.set, cfg)
}

// mergeLimitFlags applies limit flags given on the command line over cfg.
func mergeLimitFlags(f limitFlags, set map[string]bool, cfg *config.Config) {
	if set["max-length"] {
		cfg.Limits.MaxInputLength = f.maxLength
	}
	if set["max-keywords"] {
		cfg.Limits.MaxKeywords = f.maxKeywords
	}
}

// newConverter builds a Converter and the target match type from cfg.
// cfg must be validated.
func newConverter(cfg *config.Config, log *zap.Logger) (*matchtype.Converter, matchtype.MatchType, error) {
	target := matchtype.Broad
	if cfg.Convert.Target != "" {
		t, err := matchtype.ParseMatchType(cfg.Convert.Target)
		if err != nil {
			return nil, 0, err
		}
		target = t
	}

	cooldown, err := cfg.CooldownDuration()
	if err != nil {
		return nil, 0, err
	}

	opts := []matchtype.Option{
		matchtype.WithCooldown(cooldown),
		matchtype.WithLogger(log),
	}
	if n := cfg.Limits.MaxInputLength; n > 0 {
		opts = append(opts, matchtype.WithMaxInputLength(n))
	}
	if n := cfg.Limits.MaxKeywords; n > 0 {
		opts = append(opts, matchtype.WithMaxKeywords(n))
	}

	return matchtype.NewConverter(opts...), target, nil
}

// newLogger picks the log level: -v forces development, -q silences,
// otherwise log.level from the config.
func newLogger(cfg *config.Config, f commonFlags) (*zap.Logger, error) {
	level := strings.ToLower(cfg.Log.Level)
	switch {
	case f.verbose:
		level = logger.DevelopmentEnvironment
	case f.quiet:
		level = logger.SilentEnvironment
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}

// readInput concatenates the named files, or reads stdin when there are no
// names or the name is "-". Files are joined by newlines so the last keyword
// of one file never merges with the first of the next.
func readInput(paths []string, stdin io.Reader) (string, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		var data []byte
		var err error
		if p == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(p) // #nosec G304 -- path is user-provided
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrReadInput, displayName(p), err)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// resolveOutputPath joins relative output paths with defaultDir.
func resolveOutputPath(output, defaultDir string) string {
	if output == "" || output == "-" {
		return ""
	}
	if defaultDir == "" || filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(defaultDir, output)
}

// outputFile names the report keywords.<ext> inside output when output is a
// directory or ends with a path separator.
func outputFile(output string, format report.Format) string {
	if output == "" {
		return ""
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, "keywords."+format.Extension())
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, "keywords."+format.Extension())
	}
	return output
}

// writeResult renders res and writes it to output, or stdout when empty.
func writeResult(ctx context.Context, env *Environment, res *matchtype.Result, format report.Format,
	output string, cfg *config.Config, withReport bool,
) error {
	opts := report.Options{
		Report:   withReport,
		Title:    cfg.Report.Title,
		Style:    cfg.Report.Style,
		PageSize: report.PageSize(cfg.Report.PageSize),
	}
	if format == report.PDF {
		pdf := env.NewPDF()
		defer func() { _ = pdf.Close() }()
		opts.PDF = pdf
	}

	data, err := report.Render(ctx, res, format, opts)
	if err != nil {
		if errors.Is(err, report.ErrBrowserConnect) {
			return withHint(err, hints.ForBrowserConnect())
		}
		return err
	}

	if output == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFile(output, data); err != nil {
		logger.Error(ctx, "writing report failed", zap.String("path", output), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	logger.Info(ctx, "report written", zap.String("path", output), zap.String("format", string(format)))
	return nil
}

// copyKeywords places the converted keywords on the clipboard. Failures are
// reported as warnings; the conversion itself succeeded.
func copyKeywords(ctx context.Context, env *Environment, res *matchtype.Result, quiet bool) {
	method, err := env.Clipboard.Copy(ctx, res.Text())
	if err != nil {
		fmt.Fprintf(env.Stderr, "warning: copy failed: %v%s\n", err, hints.ForClipboard())
		return
	}
	if !quiet {
		fmt.Fprintf(env.Stderr, "copied %d keywords (%s)\n", len(res.Keywords), method)
	}
}

// configNotFoundHint suggests --config and the user config location.
func configNotFoundHint(name string) string {
	if fileutil.IsFilePath(name) {
		return hints.ForConfigNotFound(nil)
	}
	return hints.ForConfigNotFound(config.SearchPaths(name))
}
