package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// commands lists the subcommands runMain dispatches.
var commands = []string{"convert", "interactive", "completion", "doctor", "version", "help"}

// isCommand reports whether arg names a subcommand. Matching is case sensitive.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// hasVerboseFlag scans raw args for -v/--verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches the subcommand in args[1] and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return reportError(env, runConvertCmd(ctx, rest, env))
	case "interactive":
		return reportError(env, runInteractiveCmd(ctx, rest, env))
	case "completion":
		return reportError(env, runCompletion(rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-matchtype %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// reportError prints err with its hints and maps it to an exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
