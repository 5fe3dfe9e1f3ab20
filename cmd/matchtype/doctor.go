package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-matchtype/internal/report"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Clipboard clipboardInfo `json:"clipboard"`
	Chrome    chromeInfo    `json:"chrome"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// clipboardInfo holds clipboard tool detection results.
type clipboardInfo struct {
	Tools    []string `json:"tools"`
	Fallback string   `json:"fallback"`
}

// chromeInfo holds Chrome/Chromium detection results. Chrome is only needed
// for pdf output, so a missing browser is a warning.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkClipboard(result, env.Clipboard)
	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkClipboard lists installed clipboard tools.
func checkClipboard(result *doctorResult, clip Clipboard) {
	result.Clipboard.Fallback = "osc52"
	if clip == nil {
		return
	}
	result.Clipboard.Tools = clip.Available()
	if len(result.Clipboard.Tools) == 0 {
		result.Warnings = append(result.Warnings,
			"No clipboard tool found. --copy falls back to the OSC 52 terminal sequence")
	}
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath, found := report.BrowserPath()
	if !found {
		if chromePath != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Chrome not found at %s (ROD_BROWSER_BIN). pdf output unavailable", chromePath))
			return
		}
		result.Warnings = append(result.Warnings,
			"Chrome/Chromium not found. pdf output will download Chromium or set ROD_BROWSER_BIN")
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from rod lookup or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for pdf output")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MATCHTYPE_CONTAINER") == "1" {
		return true, "MATCHTYPE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for pdf rendering is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "matchtype-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "matchtype doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Clipboard")
	if len(r.Clipboard.Tools) > 0 {
		fmt.Fprintf(w, "  [OK] Tools: %s\n", strings.Join(r.Clipboard.Tools, ", "))
	} else {
		fmt.Fprintln(w, "  [WARN] No tool found")
	}
	fmt.Fprintf(w, "  [OK] Fallback: %s\n", r.Clipboard.Fallback)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (pdf output)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
