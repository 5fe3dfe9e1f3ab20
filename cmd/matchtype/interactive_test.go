package main

// Notes:
// - session.run: we drive the shell with a scripted PromptDriver and check the
//   printed reports, clipboard contents and state resets.
// - runInteractiveCmd: we test config loading, flag overrides and that an
//   interrupt ends the session without an error.
// - The survey-backed driver needs a real terminal and is not tested here;
//   translateSurveyErr and indexOf are covered in prompt_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	matchtype "github.com/alnah/go-matchtype"
)

// actionIndex returns the menu position of action.
func actionIndex(t *testing.T, action string) int {
	t.Helper()
	for i, a := range interactiveActions {
		if a == action {
			return i
		}
	}
	t.Fatalf("unknown action %q", action)
	return -1
}

func newTestSession(prompt *scriptedPrompt, clip *fakeClipboard, out *bytes.Buffer, opts ...matchtype.Option) *session {
	opts = append([]matchtype.Option{matchtype.WithCooldown(0)}, opts...)
	return &session{
		conv:   matchtype.NewConverter(opts...),
		prompt: prompt,
		clip:   clip,
		out:    out,
		target: matchtype.Broad,
	}
}

// ---------------------------------------------------------------------------
// TestSession_Run - Scripted interactive flows
// ---------------------------------------------------------------------------

func TestSession_ConvertCopyChangeQuit(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{
		texts: []string{"shoes, boots, shoes@sale"},
		selects: []int{
			int(matchtype.Exact),
			actionIndex(t, actionCopy),
			actionIndex(t, actionChangeTarget),
			int(matchtype.Phrase),
			actionIndex(t, actionQuit),
		},
	}
	clip := &fakeClipboard{}
	var out bytes.Buffer

	s := newTestSession(prompt, clip, &out)
	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[boots]\n[shoes]\n",
		"keywords: 2, duplicates: 0, invalid: 1",
		"shoes@sale:",
		"copied 2 keywords (fake)",
		"\"boots\"\n\"shoes\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if clip.last() != "[boots]\n[shoes]" {
		t.Errorf("clipboard = %q, want exact keywords", clip.last())
	}
	if s.target != matchtype.Phrase {
		t.Errorf("target = %v, want phrase", s.target)
	}
}

func TestSession_ConvertAgainKeepsTarget(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{
		texts: []string{"shoes", "boots"},
		selects: []int{
			int(matchtype.Exact),
			actionIndex(t, actionConvertAgain),
			actionIndex(t, actionQuit),
		},
	}
	var out bytes.Buffer

	s := newTestSession(prompt, &fakeClipboard{}, &out)
	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "[boots]") {
		t.Errorf("second conversion should keep the exact target:\n%s", out.String())
	}
	if s.input != "boots" {
		t.Errorf("input = %q, want boots", s.input)
	}
}

func TestSession_ClearResetsState(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{
		texts: []string{"shoes", ""},
		selects: []int{
			int(matchtype.Broad),
			actionIndex(t, actionClear),
			actionIndex(t, actionCopy),
			actionIndex(t, actionQuit),
		},
	}
	clip := &fakeClipboard{}
	var out bytes.Buffer

	s := newTestSession(prompt, clip, &out)
	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "cleared") {
		t.Errorf("output missing clear confirmation:\n%s", got)
	}
	if !strings.Contains(got, "No keywords entered") {
		t.Errorf("blank input after clear should report no keywords:\n%s", got)
	}
	if !strings.Contains(got, "nothing to copy") {
		t.Errorf("copy after clear should have nothing to copy:\n%s", got)
	}
	if len(clip.copied) != 0 {
		t.Errorf("clipboard should be untouched, got %q", clip.copied)
	}
}

func TestSession_ErrorsDoNotEndSession(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{
		texts: []string{"abcdefghij", "abc"},
		selects: []int{
			int(matchtype.Broad),
			actionIndex(t, actionConvertAgain),
			actionIndex(t, actionQuit),
		},
	}
	var out bytes.Buffer

	s := newTestSession(prompt, &fakeClipboard{}, &out, matchtype.WithMaxInputLength(5))
	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "error: input too large") {
		t.Errorf("output missing oversized error:\n%s", got)
	}
	if !strings.Contains(got, "under 5 characters") {
		t.Errorf("oversized hint should name the configured limit:\n%s", got)
	}
	if !strings.Contains(got, "abc\n") {
		t.Errorf("session should continue after an error:\n%s", got)
	}
}

func TestSession_RateLimited(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prompt := &scriptedPrompt{
		texts: []string{"shoes"},
		selects: []int{
			int(matchtype.Broad),
			actionIndex(t, actionChangeTarget),
			int(matchtype.Exact),
			actionIndex(t, actionCopy),
			actionIndex(t, actionQuit),
		},
	}
	var out bytes.Buffer
	clip := &fakeClipboard{}

	s := newTestSession(prompt, clip, &out,
		matchtype.WithCooldown(time.Hour),
		matchtype.WithClock(func() time.Time { return now }),
	)
	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "error: conversion requested too soon") {
		t.Errorf("second conversion inside the cooldown should be rejected:\n%s", out.String())
	}
	if s.result == nil {
		t.Fatal("a throttled conversion should keep the previous result")
	}
	if diff := cmp.Diff([]string{"shoes"}, s.result.Keywords); diff != "" {
		t.Errorf("previous keywords mismatch (-want +got):\n%s", diff)
	}
	if got := clip.last(); got != "shoes" {
		t.Errorf("copied %q, want the previous result %q", got, "shoes")
	}
}

func TestSession_Abort(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{texts: []string{"shoes"}}
	s := newTestSession(prompt, &fakeClipboard{}, &bytes.Buffer{})

	err := s.run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Errorf("run() error = %v, want ErrAborted", err)
	}
}

func TestSession_IgnoresOutOfRangeSelection(t *testing.T) {
	t.Parallel()

	prompt := &scriptedPrompt{
		texts:   []string{"shoes"},
		selects: []int{-1, 99, actionIndex(t, actionQuit)},
	}
	s := newTestSession(prompt, &fakeClipboard{}, &bytes.Buffer{})

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if s.target != matchtype.Broad {
		t.Errorf("target = %v, an invalid selection should keep broad", s.target)
	}
}

// ---------------------------------------------------------------------------
// TestRunInteractiveCmd - Command entry point
// ---------------------------------------------------------------------------

func TestRunInteractiveCmd(t *testing.T) {
	t.Parallel()

	cfgPath := writeTestFile(t, "matchtype.yaml", "limits:\n  cooldown: \"0\"\nconvert:\n  target: exact\n")

	env := newTestEnv("")
	env.prompt.texts = []string{"shoes"}
	env.prompt.selects = []int{int(matchtype.Exact), actionIndex(t, actionQuit)}

	if err := runInteractiveCmd(context.Background(), []string{"-c", cfgPath}, env.Environment); err != nil {
		t.Fatalf("runInteractiveCmd() error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "[shoes]") {
		t.Errorf("stdout = %q, want converted keyword", env.stdout.String())
	}
}

func TestRunInteractiveCmd_AbortIsSuccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if err := runInteractiveCmd(context.Background(), nil, env.Environment); err != nil {
		t.Errorf("an interrupted session should exit cleanly, got %v", err)
	}
}

func TestRunInteractiveCmd_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"bad target", []string{"--to", "fuzzy"}},
		{"quiet is fine but bad limit is not", []string{"-q", "--max-length", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			err := runInteractiveCmd(context.Background(), tt.args, env.Environment)
			if code := exitCodeFor(err); code != ExitUsage {
				t.Errorf("exit code = %d, want %d (err = %v)", code, ExitUsage, err)
			}
		})
	}
}

func TestRunInteractiveCmd_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if err := runInteractiveCmd(context.Background(), []string{"-h"}, env.Environment); err != nil {
		t.Fatalf("-h should not fail, got %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Usage: matchtype interactive") {
		t.Errorf("stdout = %q, want interactive usage", env.stdout.String())
	}
}
