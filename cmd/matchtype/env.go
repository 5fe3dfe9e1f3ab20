package main

import (
	"context"
	"io"
	"os"

	"github.com/alnah/go-matchtype/internal/clipboard"
	"github.com/alnah/go-matchtype/internal/report"
)

// Clipboard copies text and reports which tools are installed.
type Clipboard interface {
	Copy(ctx context.Context, text string) (clipboard.Method, error)
	Available() []string
}

// Compile-time interface check.
var _ Clipboard = (*clipboard.Clipboard)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard Clipboard
	NewPDF    func() report.PDFRenderer // called only for pdf output
	Prompt    PromptDriver
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.New(),
		NewPDF:    func() report.PDFRenderer { return report.NewRodRenderer(report.DefaultTimeout) },
		Prompt:    newSurveyDriver(),
	}
}
