package main

import (
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-matchtype/internal/report"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// limitFlags holds input limit overrides.
type limitFlags struct {
	maxLength   int
	maxKeywords int
}

// reportFlags holds markdown/html/pdf report options.
type reportFlags struct {
	title    string
	pageSize string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common commonFlags
	target string
	format string
	output string
	copy   bool
	report bool
	strict bool
	limits limitFlags
	doc    reportFlags

	set map[string]bool // flags given on the command line
}

// interactiveFlags holds flags for the interactive command.
type interactiveFlags struct {
	common commonFlags
	target string
	limits limitFlags

	set map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each conversion to stderr")
}

// addLimitFlags adds limit flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.IntVar(&f.maxLength, "max-length", 0, "maximum input length in characters (default: 10000)")
	fs.IntVar(&f.maxKeywords, "max-keywords", 0, "maximum keywords processed per run (default: 1000)")
}

// addReportFlags adds report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.title, "title", "", "report title for markdown, html and pdf")
	fs.StringVar(&f.pageSize, "page-size", "", "pdf page size: letter, a4, legal")
}

// newConvertFlagSet registers convert flags into f. Used for parsing and
// for completion so both share one definition.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.target, "to", "t", "", "target match type: broad, phrase, exact")
	fs.StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(report.FormatNames(), ", "))
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout)")
	fs.BoolVar(&f.copy, "copy", false, "copy converted keywords to the clipboard")
	fs.BoolVar(&f.report, "report", false, "append summary and rejected keywords to text output")
	fs.BoolVar(&f.strict, "strict", false, "exit with code 6 when any keyword is invalid")

	addLimitFlags(fs, &f.limits)
	addReportFlags(fs, &f.doc)
	addCommonFlags(fs, &f.common)

	return fs
}

// newInteractiveFlagSet registers interactive flags into f.
func newInteractiveFlagSet(f *interactiveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)

	fs.StringVarP(&f.target, "to", "t", "", "initial match type: broad, phrase, exact")
	addLimitFlags(fs, &f.limits)
	addCommonFlags(fs, &f.common)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(os.Stderr) }
	fs.SetOutput(discard{})

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.set = changedFlags(fs)

	return f, fs.Args(), nil
}

// parseInteractiveFlags parses interactive command flags.
func parseInteractiveFlags(args []string) (*interactiveFlags, error) {
	f := &interactiveFlags{}
	fs := newInteractiveFlagSet(f)
	fs.Usage = func() { printInteractiveUsage(os.Stderr) }
	fs.SetOutput(discard{})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.set = changedFlags(fs)

	return f, nil
}

// changedFlags returns the names of flags set on the command line.
func changedFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// discard swallows pflag's own error printing; runMain reports errors.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
