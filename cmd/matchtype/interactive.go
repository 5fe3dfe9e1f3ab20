package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	matchtype "github.com/alnah/go-matchtype"
	"github.com/alnah/go-matchtype/internal/hints"
	"github.com/alnah/go-matchtype/internal/logger"
	"github.com/alnah/go-matchtype/internal/report"
)

// Actions offered after each conversion.
const (
	actionConvertAgain = "convert again"
	actionChangeTarget = "change match type"
	actionCopy         = "copy"
	actionClear        = "clear"
	actionQuit         = "quit"
)

var interactiveActions = []string{actionConvertAgain, actionChangeTarget, actionCopy, actionClear, actionQuit}

// session is the state of one interactive shell. The Converter is shared
// across conversions so the cooldown applies between them.
type session struct {
	conv   *matchtype.Converter
	prompt PromptDriver
	clip   Clipboard
	out    io.Writer

	target matchtype.MatchType
	input  string
	result *matchtype.Result
}

// runInteractiveCmd runs the prompt-driven shell until the user quits.
func runInteractiveCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseInteractiveFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInteractiveUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := loadConfig(flags.common.config, env.Stderr, flags.common.quiet)
	if err != nil {
		return err
	}
	if flags.set["to"] {
		cfg.Convert.Target = flags.target
	}
	mergeLimitFlags(flags.limits, flags.set, cfg)
	if err := cfg.Validate(); err != nil {
		return err
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

	s := &session{
		conv:   conv,
		prompt: env.Prompt,
		clip:   env.Clipboard,
		out:    env.Stdout,
		target: target,
	}
	err = s.run(ctx)
	if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// run loops: ask for input, convert, show the result, ask what next.
func (s *session) run(ctx context.Context) error {
	if err := s.askInput(ctx); err != nil {
		return err
	}
	if err := s.askTarget(ctx); err != nil {
		return err
	}
	s.convert(ctx)

	for {
		idx, err := s.prompt.Select(ctx, SelectConfig{
			Message: "Next:",
			Options: interactiveActions,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(interactiveActions) {
			continue
		}

		switch interactiveActions[idx] {
		case actionConvertAgain:
			if err := s.askInput(ctx); err != nil {
				return err
			}
			s.convert(ctx)
		case actionChangeTarget:
			if err := s.askTarget(ctx); err != nil {
				return err
			}
			s.convert(ctx)
		case actionCopy:
			s.copy(ctx)
		case actionClear:
			s.clear()
			if err := s.askInput(ctx); err != nil {
				return err
			}
			s.convert(ctx)
		case actionQuit:
			return nil
		}
	}
}

func (s *session) askInput(ctx context.Context) error {
	text, err := s.prompt.TextArea(ctx, TextAreaConfig{
		Message: "Keywords:",
		Default: s.input,
		Help:    "one per line or comma separated; \"phrase\" and [exact] notation is detected",
	})
	if err != nil {
		return err
	}
	s.input = text
	return nil
}

func (s *session) askTarget(ctx context.Context) error {
	names := make([]string, len(matchtype.MatchTypes))
	for i, t := range matchtype.MatchTypes {
		names[i] = t.String()
	}
	idx, err := s.prompt.Select(ctx, SelectConfig{
		Message:      "Convert to:",
		Options:      names,
		DefaultIndex: int(s.target),
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(matchtype.MatchTypes) {
		s.target = matchtype.MatchTypes[idx]
	}
	return nil
}

// convert runs one conversion and prints either the result or the error.
// Errors do not end the session.
func (s *session) convert(ctx context.Context) {
	res, err := s.conv.Convert(ctx, matchtype.Input{Text: s.input, Target: s.target})
	if err != nil {
		// A throttled request was never processed; the previous result stands.
		if !errors.Is(err, matchtype.ErrRateLimited) {
			s.result = nil
		}
		hint := hintFor(err)
		if errors.Is(err, matchtype.ErrOversizedInput) {
			hint = hints.ForOversizedInput(s.conv.MaxInputLength())
		}
		fmt.Fprintf(s.out, "error: %v%s\n", err, hint)
		return
	}
	s.result = res

	out, err := report.Render(ctx, res, report.Text, report.Options{Report: true})
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, string(out))
	fmt.Fprintln(s.out)
}

func (s *session) copy(ctx context.Context) {
	if s.result == nil || len(s.result.Keywords) == 0 {
		fmt.Fprintln(s.out, "nothing to copy")
		return
	}
	method, err := s.clip.Copy(ctx, s.result.Text())
	if err != nil {
		fmt.Fprintf(s.out, "copy failed: %v%s\n", err, hints.ForClipboard())
		return
	}
	fmt.Fprintf(s.out, "copied %d keywords (%s)\n", len(s.result.Keywords), method)
}

// clear drops the input, the output and the validation display.
func (s *session) clear() {
	s.input = ""
	s.result = nil
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintln(s.out, "cleared")
}
