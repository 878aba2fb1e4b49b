// Package hints builds the one-line suggestions appended to CLI errors.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-txt2pdf/internal/fileutil"
)

// IsInContainer reports whether the process runs in a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// CIVars are the variables whose presence marks a CI runner.
var CIVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any of CIVars is set according to getenv.
func InCI(getenv func(string) string) bool {
	return slices.ContainsFunc(CIVars, func(name string) bool { return getenv(name) != "" })
}

// ForBrowserConnect suggests the rod environment variables that usually
// fix a browser that cannot start.
func ForBrowserConnect() string {
	var hints []string
	sandboxed := os.Getenv("ROD_NO_SANDBOX") != "1"
	if sandboxed && (InCI(os.Getenv) || IsInContainer()) {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForTimeout suggests a longer timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the user config file
// when one of the searched paths is under the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "go-txt2pdf/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory covers output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidIndent shows the accepted .indent syntax.
func ForInvalidIndent() string {
	return format(`write ".indent N" with a signed integer N, e.g. ".indent 2" or ".indent -1"`)
}

// ForLineNumbers explains how parse error line numbers are counted.
func ForLineNumbers() string {
	return format("line numbers count non-blank lines only")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
