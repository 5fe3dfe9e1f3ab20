package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: matchtype <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Convert keywords to a match type")
	fmt.Fprintln(w, "  interactive  Convert keywords in an interactive session")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  doctor       Check clipboard, browser and system setup")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'matchtype help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: matchtype convert [files...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert comma or newline separated keywords to broad, phrase or exact")
	fmt.Fprintln(w, "match syntax. Reads stdin when no file is given or a file is \"-\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -t, --to <type>           Match type: broad, phrase, exact (default: broad)")
	fmt.Fprintln(w, "      --strict              Exit with code 6 when any keyword is invalid")
	fmt.Fprintln(w, "      --max-length <n>      Maximum input length in characters (default: 10000)")
	fmt.Fprintln(w, "      --max-keywords <n>    Maximum keywords processed per run (default: 1000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Format: text, json, yaml, markdown, html, pdf")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout, required for pdf)")
	fmt.Fprintln(w, "      --copy                Copy converted keywords to the clipboard")
	fmt.Fprintln(w, "      --report              Add summary and rejected keywords to text output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --title <s>           Report title for markdown, html and pdf")
	fmt.Fprintln(w, "      --page-size <s>       PDF page size: letter, a4, legal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log each conversion to stderr")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage, 3 I/O, 4 browser,")
	fmt.Fprintln(w, "  5 input too large or rate limited, 6 invalid keywords with --strict")
}

// printInteractiveUsage prints usage for the interactive command.
func printInteractiveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: matchtype interactive [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enter keywords, pick a match type, then convert again, copy or clear.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --to <type>           Initial match type: broad, phrase, exact")
	fmt.Fprintln(w, "      --max-length <n>      Maximum input length in characters")
	fmt.Fprintln(w, "      --max-keywords <n>    Maximum keywords processed per run")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log each conversion to stderr")
}

// printCompletionUsage prints usage for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: matchtype completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  matchtype completion bash > /etc/bash_completion.d/matchtype")
	fmt.Fprintln(w, "  matchtype completion zsh > \"${fpath[1]}/_matchtype\"")
	fmt.Fprintln(w, "  matchtype completion fish > ~/.config/fish/completions/matchtype.fish")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "interactive":
		printInteractiveUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: matchtype doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check clipboard tools, Chrome for pdf output and the temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: matchtype version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: matchtype help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
