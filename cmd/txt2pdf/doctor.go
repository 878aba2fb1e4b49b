package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-txt2pdf/internal/assets"
	"github.com/alnah/go-txt2pdf/internal/fileutil"
	"github.com/alnah/go-txt2pdf/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport holds every diagnostic result.
type doctorReport struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	Styles   styleInfo   `json:"styles"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type styleInfo struct {
	Builtin   []string `json:"builtin"`
	AssetPath string   `json:"asset_path,omitempty"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbe isolates the checks from the host for tests.
type doctorProbe struct {
	getenv       func(string) string
	lookPath     func() (string, bool)
	exists       func(string) bool
	version      func(bin string) (string, error)
	tempWritable func() bool
}

func defaultProbe() doctorProbe {
	return doctorProbe{
		getenv:   os.Getenv,
		lookPath: launcher.LookPath,
		exists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
		version: func(bin string) (string, error) {
			out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from rod or ROD_BROWSER_BIN
			return strings.TrimSpace(string(out)), err
		},
		tempWritable: func() bool {
			_, cleanup, err := fileutil.WriteTempFile("doctor", "txt")
			if err != nil {
				return false
			}
			cleanup()
			return true
		},
	}
}

// runDoctorCmd prints diagnostics and returns ExitGeneral when any check
// failed. Warnings alone exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	report := runDoctor(defaultProbe())

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(p doctorProbe) *doctorReport {
	r := &doctorReport{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBrowser(r, p)
	checkEnvironment(r, p)
	checkStyles(r, p)
	r.System.TempWritable = p.tempWritable()
	if !r.System.TempWritable {
		r.Errors = append(r.Errors, fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	}
	return r
}

func checkBrowser(r *doctorReport, p doctorProbe) {
	bin := r.Env.BrowserBin
	if bin == "" {
		var found bool
		if bin, found = p.lookPath(); !found {
			r.Errors = append(r.Errors, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if !p.exists(bin) {
		r.Errors = append(r.Errors, fmt.Sprintf("Chrome not found at %s", bin))
		return
	}

	r.Browser.Found = true
	r.Browser.Path = bin
	r.Browser.Sandbox = r.Env.NoSandbox != "1"

	v, err := p.version(bin)
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	r.Browser.Version = v
}

// containerSignals are checked in order; the first match names the hint.
var containerSignals = []struct {
	hint  string
	check func(p doctorProbe) bool
}{
	{"TXT2PDF_CONTAINER=1", func(p doctorProbe) bool { return p.getenv("TXT2PDF_CONTAINER") == "1" }},
	{"/.dockerenv", func(p doctorProbe) bool { return p.exists("/.dockerenv") }},
	{"container", func(p doctorProbe) bool { return p.getenv("container") != "" }},
	{"KUBERNETES_SERVICE_HOST", func(p doctorProbe) bool { return p.getenv("KUBERNETES_SERVICE_HOST") != "" }},
}

func checkEnvironment(r *doctorReport, p doctorProbe) {
	for _, s := range containerSignals {
		if s.check(p) {
			r.Env.Container, r.Env.ContainerHint = true, s.hint
			break
		}
	}
	r.Env.CI = hints.InCI(p.getenv)

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.Warnings = append(r.Warnings, "Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkStyles lists the built-in styles and validates TXT2PDF_ASSET_PATH.
func checkStyles(r *doctorReport, p doctorProbe) {
	r.Styles.Builtin = assets.BuiltinStyles()

	path := p.getenv("TXT2PDF_ASSET_PATH")
	if path == "" {
		return
	}
	r.Styles.AssetPath = path
	if _, err := assets.NewFilesystemLoader(path); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("TXT2PDF_ASSET_PATH unusable: %v", err))
	}
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "txt2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
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

	fmt.Fprintln(w, "Styles")
	fmt.Fprintf(w, "  [OK] Built-in: %s\n", strings.Join(r.Styles.Builtin, ", "))
	if r.Styles.AssetPath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Styles.AssetPath)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	printList(w, "Warnings:", "WARN", r.Warnings)
	printList(w, "Errors:", "ERROR", r.Errors)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printList(w io.Writer, title, tag string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "  [%s] %s\n", tag, item)
	}
	fmt.Fprintln(w)
}
