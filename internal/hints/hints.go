// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-matchtype/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForOversizedInput suggests splitting the list or raising the limit.
func ForOversizedInput(maxLength int) string {
	return format(fmt.Sprintf("split the list into chunks under %d characters or raise --max-length", maxLength))
}

// ForRateLimited explains the cooldown between conversions.
func ForRateLimited() string {
	return format("conversions are limited to one per cooldown; retry shortly or set limits.cooldown")
}

// ForTooManyKeywords suggests raising the keyword limit.
func ForTooManyKeywords(maxKeywords int) string {
	return format(fmt.Sprintf("only %d keywords are processed per run; raise --max-keywords or split the list", maxKeywords))
}

// ForUnknownMatchType lists the accepted match types.
func ForUnknownMatchType() string {
	return format("use one of: broad, phrase, exact")
}

// ForStrictInvalid points at the report flag for details.
func ForStrictInvalid() string {
	return format("run with --report to see why each keyword was rejected")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-matchtype/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-matchtype") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForClipboard lists the tools tried when copying fails.
func ForClipboard() string {
	return format("install pbcopy, wl-copy, xclip or xsel, or use a terminal with OSC 52 support")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
