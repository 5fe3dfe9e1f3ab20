package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-matchtype/internal/report"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Desc     string
	IsBool   bool
	Values   []string // enum values
	FileGlob string   // file completion pattern
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool
	Args       []string // fixed positional values
}

// completionMeta holds completion hints; names, types and descriptions come
// from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"to":        {Values: []string{"broad", "phrase", "exact"}},
	"format":    {Values: report.FormatNames()},
	"page-size": {Values: []string{"letter", "a4", "legal"}},
	"config":    {FileGlob: "*.yaml,*.yml"},
	"output":    {FileGlob: "*"},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Desc:   f.Usage,
			IsBool: f.Value.Type() == "bool",
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.FileGlob = meta.FileGlob
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "convert",
			Desc:       "Convert keywords to a match type",
			Flags:      extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "interactive",
			Desc:  "Convert keywords in an interactive shell",
			Flags: extractFlagsFromFlagSet(newInteractiveFlagSet(&interactiveFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name:  "doctor",
			Desc:  "Check clipboard and browser setup",
			Flags: []flagDef{{Long: "json", Desc: "output as JSON", IsBool: true}},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: commands},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for matchtype\n\n")
	b.WriteString("_matchtype_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	seen := make(map[string]bool)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if (len(f.Values) == 0 && f.FileGlob == "") || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W %q -- \"${cur}\")); return ;;\n", pattern, strings.Join(f.Values, " "))
			} else {
				fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -f -- \"${cur}\")); return ;;\n", pattern)
			}
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		words := append([]string(nil), c.Args...)
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if c.TakesFiles {
			b.WriteString("            if [[ \"${cur}\" != -* ]]; then COMPREPLY=($(compgen -f -- \"${cur}\")); return; fi\n")
		}
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _matchtype_completions matchtype\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef matchtype\n\n")
	b.WriteString("_matchtype() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			action := ""
			switch {
			case len(f.Values) > 0:
				action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
			case f.FileGlob != "":
				action = fmt.Sprintf(":%s:_files", f.Long)
			case !f.IsBool:
				action = fmt.Sprintf(":%s:", f.Long)
			}
			if f.Short != "" {
				fmt.Fprintf(&b, "                '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, zshEscape(f.Desc), action)
			} else {
				fmt.Fprintf(&b, "                '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), action)
			}
		}
		switch {
		case c.TakesFiles:
			b.WriteString("                '*:keyword file:_files'\n")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "                '1:argument:(%s)'\n", strings.Join(c.Args, " "))
		default:
			b.WriteString("                ''\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_matchtype \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for matchtype\n\n")
	b.WriteString("function __fish_matchtype_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_matchtype_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c matchtype -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c matchtype -n __fish_matchtype_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_matchtype_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c matchtype -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case len(f.Values) > 0:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case f.FileGlob != "":
				line += " -r -F"
			case !f.IsBool:
				line += " -x"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c matchtype -n %s -F\n", cond)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c matchtype -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters with meaning inside zsh _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}
