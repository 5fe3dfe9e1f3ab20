package main

// Notes:
// - runConvertCmd: we test input sources (stdin, files, "-"), every text-based
//   format, pdf through a fake renderer, --copy through a fake clipboard,
//   --strict, limits and usage errors. Real browser and clipboard tools are
//   covered by their packages.
// - readInput/resolveOutputPath: we test joining and path resolution.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	matchtype "github.com/alnah/go-matchtype"
	"github.com/alnah/go-matchtype/internal/config"
	"github.com/alnah/go-matchtype/internal/report"
)

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Text - Plain keyword output
// ---------------------------------------------------------------------------

func TestRunConvertCmd_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "default broad",
			stdin: `"running shoes", [red shoes]`,
			want:  "red shoes\nrunning shoes\n",
		},
		{
			name:  "to phrase",
			stdin: "running shoes\nred shoes",
			args:  []string{"--to", "phrase"},
			want:  "\"red shoes\"\n\"running shoes\"\n",
		},
		{
			name:  "to exact short flag",
			stdin: "running shoes",
			args:  []string{"-t", "EXACT"},
			want:  "[running shoes]\n",
		},
		{
			name:  "duplicates collapse",
			stdin: "shoes, [shoes], \"shoes\"",
			want:  "shoes\n",
		},
		{
			name:  "invalid keywords skipped",
			stdin: "shoes@sale, boots",
			want:  "boots\n",
		},
		{
			name:  "blank input",
			stdin: "  \n ",
			want:  "",
		},
		{
			name:  "blank input with report",
			stdin: "",
			args:  []string{"--report"},
			want:  "No keywords entered\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(tt.stdin)
			if err := runConvertCmd(context.Background(), tt.args, env.Environment); err != nil {
				t.Fatalf("runConvertCmd() error = %v", err)
			}
			if got := env.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Report - Summary and rejected keywords
// ---------------------------------------------------------------------------

func TestRunConvertCmd_Report(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes, shoes, shoes@sale")
	if err := runConvertCmd(context.Background(), []string{"--report"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{
		"shoes\n",
		"keywords: 1, duplicates: 1, invalid: 1",
		"rejected:",
		"shoes@sale:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Files - File and stdin input
// ---------------------------------------------------------------------------

func TestRunConvertCmd_Files(t *testing.T) {
	t.Parallel()

	first := writeTestFile(t, "a.txt", "alpha")
	second := writeTestFile(t, "b.txt", "beta")

	env := newTestEnv("gamma")
	args := []string{first, second, "-", "--to", "exact"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	want := "[alpha]\n[beta]\n[gamma]\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunConvertCmd_MissingFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	missing := filepath.Join(t.TempDir(), "missing.txt")
	err := runConvertCmd(context.Background(), []string{missing}, env.Environment)
	if !errors.Is(err, ErrReadInput) {
		t.Fatalf("error = %v, want ErrReadInput", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
	if code := exitCodeFor(err); code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Formats - Structured and document output
// ---------------------------------------------------------------------------

func TestRunConvertCmd_JSON(t *testing.T) {
	t.Parallel()

	env := newTestEnv("red shoes, blue shoes")
	args := []string{"--format", "json", "--to", "phrase"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	var got struct {
		Target   string   `json:"target"`
		Keywords []string `json:"keywords"`
		Summary  struct {
			KeywordCount int `json:"keywordCount"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(env.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, env.stdout.String())
	}
	if got.Target != "phrase" {
		t.Errorf("target = %q, want phrase", got.Target)
	}
	if diff := cmp.Diff([]string{`"blue shoes"`, `"red shoes"`}, got.Keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
	if got.Summary.KeywordCount != 2 {
		t.Errorf("keywordCount = %d, want 2", got.Summary.KeywordCount)
	}
}

func TestRunConvertCmd_TextualFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   []string
	}{
		{"yaml", []string{"keywords:", "runId:"}},
		{"markdown", []string{"# Keyword conversion report", "## Keywords"}},
		{"md", []string{"| Target | Keywords | Duplicates | Invalid |"}},
		{"html", []string{"<html", "<h1", "Keyword conversion report"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("shoes")
			args := []string{"-f", tt.format}
			if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
				t.Fatalf("runConvertCmd() error = %v", err)
			}
			out := env.stdout.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRunConvertCmd_Title(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	args := []string{"-f", "markdown", "--title", "Spring campaign"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "# Spring campaign\n") {
		t.Errorf("output should start with the custom title:\n%s", env.stdout.String())
	}
}

func TestRunConvertCmd_UnknownFormat(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	err := runConvertCmd(context.Background(), []string{"-f", "docx"}, env.Environment)
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}
	if code := exitCodeFor(err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Output - Writing to files
// ---------------------------------------------------------------------------

func TestRunConvertCmd_OutputFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "keywords.txt")
	env := newTestEnv("shoes, boots")
	if err := runConvertCmd(context.Background(), []string{"-o", out}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "boots\nshoes\n" {
		t.Errorf("file content = %q, want %q", data, "boots\nshoes\n")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout should be empty when writing to a file, got %q", env.stdout.String())
	}
}

func TestRunConvertCmd_OutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := newTestEnv("shoes")
	if err := runConvertCmd(context.Background(), []string{"-f", "md", "-o", dir}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "keywords.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "## Keywords") {
		t.Errorf("file should hold the markdown report:\n%s", data)
	}
}

func TestOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name   string
		output string
		format report.Format
		want   string
	}{
		{"stdout", "", report.JSON, ""},
		{"file", "out.json", report.JSON, "out.json"},
		{"trailing slash", "reports/", report.Text, filepath.Join("reports", "keywords.txt")},
		{"existing dir", dir, report.PDF, filepath.Join(dir, "keywords.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := outputFile(tt.output, tt.format); got != tt.want {
				t.Errorf("outputFile(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestRunConvertCmd_PDF(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "report.pdf")
	env := newTestEnv("shoes")
	args := []string{"-f", "pdf", "-o", out, "--page-size", "a4"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("output is not the renderer's PDF: %q", data)
	}
	if env.pdf.opts.PageSize != report.A4 {
		t.Errorf("PageSize = %q, want %q", env.pdf.opts.PageSize, report.A4)
	}
	if !strings.Contains(env.pdf.html, "shoes") {
		t.Error("renderer should receive the HTML report")
	}
	if !env.pdf.closed {
		t.Error("renderer should be closed after use")
	}
}

func TestRunConvertCmd_PDFNeedsOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	err := runConvertCmd(context.Background(), []string{"-f", "pdf"}, env.Environment)
	if !errors.Is(err, ErrPDFNeedsOutput) {
		t.Fatalf("error = %v, want ErrPDFNeedsOutput", err)
	}
	if code := exitCodeFor(err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRunConvertCmd_PDFBrowserError(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	env.pdf.err = report.ErrBrowserConnect
	out := filepath.Join(t.TempDir(), "report.pdf")
	err := runConvertCmd(context.Background(), []string{"-f", "pdf", "-o", out}, env.Environment)
	if code := exitCodeFor(err); code != ExitBrowser {
		t.Errorf("exit code = %d, want %d (err = %v)", code, ExitBrowser, err)
	}
	if hintFor(err) == "" {
		t.Error("browser errors should carry a hint")
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Copy - Clipboard integration
// ---------------------------------------------------------------------------

func TestRunConvertCmd_Copy(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes, boots")
	args := []string{"--copy", "-f", "json", "--to", "exact"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}

	if got := env.clip.last(); got != "[boots]\n[shoes]" {
		t.Errorf("clipboard = %q, want keywords only", got)
	}
	if !strings.Contains(env.stderr.String(), "copied 2 keywords") {
		t.Errorf("stderr = %q, want copy confirmation", env.stderr.String())
	}
}

func TestRunConvertCmd_CopyFailureIsWarning(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	env.clip.err = errClipboard
	if err := runConvertCmd(context.Background(), []string{"--copy"}, env.Environment); err != nil {
		t.Fatalf("copy failure should not fail the command, got %v", err)
	}
	if !strings.Contains(env.stderr.String(), "warning: copy failed") {
		t.Errorf("stderr = %q, want copy warning", env.stderr.String())
	}
	if env.stdout.String() != "shoes\n" {
		t.Errorf("stdout = %q, want converted keywords", env.stdout.String())
	}
}

func TestRunConvertCmd_CopySkippedForBlankInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if err := runConvertCmd(context.Background(), []string{"--copy"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	if len(env.clip.copied) != 0 {
		t.Errorf("clipboard should stay untouched, got %q", env.clip.copied)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Limits - Strict mode and input limits
// ---------------------------------------------------------------------------

func TestRunConvertCmd_Strict(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes, shoes@sale")
	err := runConvertCmd(context.Background(), []string{"--strict"}, env.Environment)
	if !errors.Is(err, ErrInvalidKeywords) {
		t.Fatalf("error = %v, want ErrInvalidKeywords", err)
	}
	if code := exitCodeFor(err); code != ExitInvalid {
		t.Errorf("exit code = %d, want %d", code, ExitInvalid)
	}
	if env.stdout.String() != "shoes\n" {
		t.Errorf("valid keywords should still be written, got %q", env.stdout.String())
	}
}

func TestRunConvertCmd_StrictAllValid(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes, boots")
	if err := runConvertCmd(context.Background(), []string{"--strict"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
}

func TestRunConvertCmd_Oversized(t *testing.T) {
	t.Parallel()

	env := newTestEnv("abcdef")
	err := runConvertCmd(context.Background(), []string{"--max-length", "5"}, env.Environment)
	if !errors.Is(err, matchtype.ErrOversizedInput) {
		t.Fatalf("error = %v, want ErrOversizedInput", err)
	}
	if code := exitCodeFor(err); code != ExitRejected {
		t.Errorf("exit code = %d, want %d", code, ExitRejected)
	}
	if hint := hintFor(err); !strings.Contains(hint, "5") {
		t.Errorf("hint = %q, want the configured limit", hint)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("nothing should be written, got %q", env.stdout.String())
	}
}

func TestRunConvertCmd_Truncated(t *testing.T) {
	t.Parallel()

	env := newTestEnv("a, b, c")
	if err := runConvertCmd(context.Background(), []string{"--max-keywords", "2"}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	if env.stdout.String() != "a\nb\n" {
		t.Errorf("stdout = %q, want first two keywords", env.stdout.String())
	}
	if !strings.Contains(env.stderr.String(), "warning:") {
		t.Errorf("stderr = %q, want truncation warning", env.stderr.String())
	}
}

func TestRunConvertCmd_TruncatedQuiet(t *testing.T) {
	t.Parallel()

	env := newTestEnv("a, b, c")
	args := []string{"--max-keywords", "2", "--quiet"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	if strings.Contains(env.stderr.String(), "warning:") {
		t.Errorf("--quiet should suppress warnings, got %q", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunConvertCmd_Usage - Flag and config errors
// ---------------------------------------------------------------------------

func TestRunConvertCmd_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--bogus"}, ErrUsage},
		{"quiet and verbose", []string{"-q", "-v"}, ErrUsage},
		{"unknown match type", []string{"--to", "fuzzy"}, config.ErrInvalidValue},
		{"bad page size", []string{"--page-size", "a3"}, config.ErrInvalidValue},
		{"negative limit", []string{"--max-keywords", "-1"}, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("shoes")
			err := runConvertCmd(context.Background(), tt.args, env.Environment)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != ExitUsage {
				t.Errorf("exit code = %d, want %d", code, ExitUsage)
			}
		})
	}
}

func TestRunConvertCmd_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if err := runConvertCmd(context.Background(), []string{"--help"}, env.Environment); err != nil {
		t.Fatalf("--help should not fail, got %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Usage: matchtype convert") {
		t.Errorf("stdout = %q, want convert usage", env.stdout.String())
	}
}

func TestRunConvertCmd_ConfigFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeTestFile(t, "matchtype.yaml", `convert:
  target: exact
output:
  format: markdown
report:
  title: From config
`)

	env := newTestEnv("shoes")
	if err := runConvertCmd(context.Background(), []string{"-c", cfgPath}, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "# From config") {
		t.Errorf("config title not applied:\n%s", out)
	}
	if !strings.Contains(out, "[shoes]") {
		t.Errorf("config target not applied:\n%s", out)
	}
}

func TestRunConvertCmd_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeTestFile(t, "matchtype.yaml", "convert:\n  target: exact\n")

	env := newTestEnv("shoes")
	args := []string{"-c", cfgPath, "--to", "phrase"}
	if err := runConvertCmd(context.Background(), args, env.Environment); err != nil {
		t.Fatalf("runConvertCmd() error = %v", err)
	}
	if env.stdout.String() != "\"shoes\"\n" {
		t.Errorf("stdout = %q, want flag target", env.stdout.String())
	}
}

func TestRunConvertCmd_ConfigNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv("shoes")
	err := runConvertCmd(context.Background(), []string{"-c", "definitely-not-a-config"}, env.Environment)
	if code := exitCodeFor(err); code != ExitUsage {
		t.Fatalf("exit code = %d, want %d (err = %v)", code, ExitUsage, err)
	}
	if !strings.Contains(hintFor(err), "--config") {
		t.Errorf("hint = %q, want --config suggestion", hintFor(err))
	}
}

// ---------------------------------------------------------------------------
// TestReadInput - Input concatenation
// ---------------------------------------------------------------------------

func TestReadInput(t *testing.T) {
	t.Parallel()

	a := writeTestFile(t, "a.txt", "one")
	b := writeTestFile(t, "b.txt", "two")

	got, err := readInput([]string{a, b}, strings.NewReader("unused"))
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if got != "one\ntwo" {
		t.Errorf("readInput() = %q, want %q", got, "one\ntwo")
	}

	got, err = readInput(nil, strings.NewReader("from stdin"))
	if err != nil {
		t.Fatalf("readInput(stdin) error = %v", err)
	}
	if got != "from stdin" {
		t.Errorf("readInput(stdin) = %q, want %q", got, "from stdin")
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Default directory handling
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "out.txt")
	tests := []struct {
		name       string
		output     string
		defaultDir string
		want       string
	}{
		{"empty is stdout", "", "/reports", ""},
		{"dash is stdout", "-", "/reports", ""},
		{"relative without dir", "out.txt", "", "out.txt"},
		{"relative with dir", "out.txt", "reports", filepath.Join("reports", "out.txt")},
		{"absolute ignores dir", abs, "reports", abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveOutputPath(tt.output, tt.defaultDir); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q) = %q, want %q", tt.output, tt.defaultDir, got, tt.want)
			}
		})
	}
}
