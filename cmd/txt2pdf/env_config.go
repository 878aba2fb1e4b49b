package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-txt2pdf/internal/config"
)

const envPrefix = "TXT2PDF_"

// envConfig holds TXT2PDF_* overrides for CI use without a YAML file.
type envConfig struct {
	ConfigPath string        // TXT2PDF_CONFIG
	Style      string        // TXT2PDF_STYLE
	Timeout    time.Duration // TXT2PDF_TIMEOUT

	InputDir  string // TXT2PDF_INPUT_DIR
	OutputDir string // TXT2PDF_OUTPUT_DIR
	AssetPath string // TXT2PDF_ASSET_PATH

	PageSize   string // TXT2PDF_PAGE_SIZE
	FooterDate string // TXT2PDF_FOOTER_DATE
	Workers    int    // TXT2PDF_WORKERS
}

// knownEnvVars is used to catch typos in variable names.
var knownEnvVars = map[string]bool{
	"TXT2PDF_CONFIG":      true,
	"TXT2PDF_STYLE":       true,
	"TXT2PDF_TIMEOUT":     true,
	"TXT2PDF_INPUT_DIR":   true,
	"TXT2PDF_OUTPUT_DIR":  true,
	"TXT2PDF_ASSET_PATH":  true,
	"TXT2PDF_PAGE_SIZE":   true,
	"TXT2PDF_FOOTER_DATE": true,
	"TXT2PDF_WORKERS":     true,
	"TXT2PDF_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads the TXT2PDF_* variables. Unparsable durations and
// worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TXT2PDF_CONFIG"),
		Style:      os.Getenv("TXT2PDF_STYLE"),
		InputDir:   os.Getenv("TXT2PDF_INPUT_DIR"),
		OutputDir:  os.Getenv("TXT2PDF_OUTPUT_DIR"),
		AssetPath:  os.Getenv("TXT2PDF_ASSET_PATH"),
		PageSize:   os.Getenv("TXT2PDF_PAGE_SIZE"),
		FooterDate: os.Getenv("TXT2PDF_FOOTER_DATE"),
	}

	if timeout := os.Getenv("TXT2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("TXT2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars writes one warning per unrecognized TXT2PDF_* name.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields that are still empty. Flags are merged
// afterwards, giving flags > env > config file > defaults. Timeout is
// resolved separately by resolveTimeoutWithEnv.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.FooterDate != "" && cfg.Footer.Date == "" {
		cfg.Footer.Date = env.FooterDate
		cfg.Footer.Enabled = true
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
