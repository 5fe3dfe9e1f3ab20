package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-matchtype/internal/clipboard"
	"github.com/alnah/go-matchtype/internal/report"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fakes for injectable dependencies
// ---------------------------------------------------------------------------

// fakeClipboard records copied text.
type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
	err    error
	tools  []string
}

func (c *fakeClipboard) Copy(_ context.Context, text string) (clipboard.Method, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	c.copied = append(c.copied, text)
	return clipboard.Method("fake"), nil
}

func (c *fakeClipboard) Available() []string { return c.tools }

func (c *fakeClipboard) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.copied) == 0 {
		return ""
	}
	return c.copied[len(c.copied)-1]
}

// fakePDF returns a fixed document and records the HTML it received.
type fakePDF struct {
	html   string
	opts   report.PDFOptions
	err    error
	closed bool
}

func (p *fakePDF) RenderPDF(_ context.Context, html string, opts report.PDFOptions) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.html = html
	p.opts = opts
	return []byte("%PDF-1.4 fake"), nil
}

func (p *fakePDF) Close() error {
	p.closed = true
	return nil
}

// scriptedPrompt answers prompts from queues. An empty queue aborts, which
// ends the interactive session the way Ctrl+C would.
type scriptedPrompt struct {
	selects   []int
	texts     []string
	selectMsg []string
}

func (p *scriptedPrompt) Select(_ context.Context, cfg SelectConfig) (int, error) {
	p.selectMsg = append(p.selectMsg, cfg.Message)
	if len(p.selects) == 0 {
		return 0, ErrAborted
	}
	idx := p.selects[0]
	p.selects = p.selects[1:]
	return idx, nil
}

func (p *scriptedPrompt) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if len(p.texts) == 0 {
		return "", ErrAborted
	}
	text := p.texts[0]
	p.texts = p.texts[1:]
	return text, nil
}

// testEnv bundles an Environment with its captured outputs.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	clip   *fakeClipboard
	pdf    *fakePDF
	prompt *scriptedPrompt
}

func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		clip:   &fakeClipboard{tools: []string{"xclip"}},
		pdf:    &fakePDF{},
		prompt: &scriptedPrompt{},
	}
	te.Environment = &Environment{
		Stdin:     strings.NewReader(stdin),
		Stdout:    te.stdout,
		Stderr:    te.stderr,
		Clipboard: te.clip,
		NewPDF:    func() report.PDFRenderer { return te.pdf },
		Prompt:    te.prompt,
	}
	return te
}

// errClipboard is returned by failing fake clipboards.
var errClipboard = errors.New("clipboard broken")

// writeTestFile writes content under a fresh temp dir and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
