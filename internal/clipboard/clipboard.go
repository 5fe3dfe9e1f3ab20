// Package clipboard copies text to the system clipboard.
//
// Platform tools are tried in order (pbcopy on macOS, clip.exe on Windows,
// wl-copy, xclip and xsel elsewhere). When none of them is installed, or all
// of them fail, the text is written to the terminal as an OSC 52 escape
// sequence, which most modern terminal emulators forward to the clipboard.
package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard is returned when no tool succeeded and no fallback writer is set.
var ErrNoClipboard = errors.New("no clipboard available")

// Method describes how text reached the clipboard.
type Method string

// OSC52 is reported when the terminal escape sequence was used.
const OSC52 Method = "osc52"

// Tool is an external clipboard command reading text from stdin.
type Tool struct {
	Name string
	Args []string
}

// Runner executes a tool with text on stdin.
type Runner func(ctx context.Context, tool Tool, stdin io.Reader) error

// Clipboard copies text using the first working tool.
type Clipboard struct {
	tools    []Tool
	lookPath func(string) (string, error)
	run      Runner
	fallback io.Writer
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithTools replaces the platform tool list.
func WithTools(tools ...Tool) Option {
	return func(c *Clipboard) { c.tools = tools }
}

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(c *Clipboard) { c.lookPath = fn }
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(c *Clipboard) { c.run = r }
}

// WithFallback sets where the OSC 52 sequence is written. Nil disables it.
func WithFallback(w io.Writer) Option {
	return func(c *Clipboard) { c.fallback = w }
}

// New returns a Clipboard for the current platform. The OSC 52 fallback is
// written to os.Stderr unless WithFallback says otherwise.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		tools:    PlatformTools(runtime.GOOS, os.Getenv("WAYLAND_DISPLAY") != ""),
		lookPath: exec.LookPath,
		run:      runTool,
		fallback: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlatformTools returns the clipboard commands to try on goos.
func PlatformTools(goos string, wayland bool) []Tool {
	switch goos {
	case "darwin":
		return []Tool{{Name: "pbcopy"}}
	case "windows":
		return []Tool{{Name: "clip.exe"}}
	default:
		tools := []Tool{
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
		if wayland {
			tools = append([]Tool{{Name: "wl-copy"}}, tools...)
		}
		return tools
	}
}

// Available returns the names of installed tools, in the order they are tried.
func (c *Clipboard) Available() []string {
	var names []string
	for _, t := range c.tools {
		if _, err := c.lookPath(t.Name); err == nil {
			names = append(names, t.Name)
		}
	}
	return names
}

// Copy places text on the clipboard and reports the method used.
// Tool failures are not returned when the OSC 52 fallback succeeds.
func (c *Clipboard) Copy(ctx context.Context, text string) (Method, error) {
	var errs []error
	for _, t := range c.tools {
		if _, err := c.lookPath(t.Name); err != nil {
			continue
		}
		err := c.run(ctx, t, strings.NewReader(text))
		if err == nil {
			return Method(t.Name), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
	}

	if c.fallback == nil {
		return "", errors.Join(append([]error{ErrNoClipboard}, errs...)...)
	}
	if _, err := io.WriteString(c.fallback, Sequence(text)); err != nil {
		return "", fmt.Errorf("writing OSC 52 sequence: %w", err)
	}
	return OSC52, nil
}

// Sequence returns the OSC 52 escape sequence setting the clipboard to text.
func Sequence(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

func runTool(ctx context.Context, tool Tool, stdin io.Reader) error {
	cmd := exec.CommandContext(ctx, tool.Name, tool.Args...) // #nosec G204 -- tool names come from a fixed list
	cmd.Stdin = stdin
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
