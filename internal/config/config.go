// Package config loads the YAML configuration used by the txt2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-txt2pdf/internal/fileutil"
	"github.com/alnah/go-txt2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-txt2pdf"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleLength       = 4096 // names, paths and short inline CSS
	MaxTextLength        = 500
	MaxDateLength        = 60
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
	MaxTimeoutLength     = 20
)

// Numeric limits.
const (
	MaxFontSize    = 500.0
	MaxIndentWidth = 500.0
	MinPreview     = 20
	MaxPreview     = 1000
	MaxWorkers     = 8 // one browser per worker
	MaxTimeout     = 10 * time.Minute
)

// Config holds everything the CLI reads from a config file.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Style   string        `yaml:"style"` // style name, CSS file path, or inline CSS
	Assets  AssetsConfig  `yaml:"assets"`
	Page    PageConfig    `yaml:"page"`
	Footer  FooterConfig  `yaml:"footer"`
	Layout  LayoutConfig  `yaml:"layout"`
	Preview PreviewConfig `yaml:"preview"`
	Timeout string        `yaml:"timeout,omitempty"` // Go duration, e.g. "45s"
	Workers int           `yaml:"workers,omitempty"` // 0 = automatic
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // used when no argument is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// AssetsConfig defines where custom styles live.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // letter, a4, legal
	Orientation string  `yaml:"orientation"` // portrait, landscape
	Margin      float64 `yaml:"margin"`      // inches
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // left, center, right
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"`
	Date           string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
}

// LayoutConfig overrides the paragraph layout. Zero fields keep the
// built-in values.
type LayoutConfig struct {
	NormalSize  float64 `yaml:"normalSize"`
	LargeSize   float64 `yaml:"largeSize"`
	IndentWidth float64 `yaml:"indentWidth"`
}

// PreviewConfig defines text preview options.
type PreviewConfig struct {
	Width int `yaml:"width"` // 0 = terminal width
}

// DefaultConfig returns a configuration that changes nothing.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks lengths and ranges. LoadConfig calls it; callers that
// build a Config by hand should call it too.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"timeout", c.Timeout, MaxTimeoutLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	sizes := []struct {
		field string
		value float64
		max   float64
	}{
		{"layout.normalSize", c.Layout.NormalSize, MaxFontSize},
		{"layout.largeSize", c.Layout.LargeSize, MaxFontSize},
		{"layout.indentWidth", c.Layout.IndentWidth, MaxIndentWidth},
	}
	for _, s := range sizes {
		if s.value < 0 || s.value > s.max {
			return fmt.Errorf("%w: %s must be between 0 and %g, got %g", ErrInvalidValue, s.field, s.max, s.value)
		}
	}

	if w := c.Preview.Width; w != 0 && (w < MinPreview || w > MaxPreview) {
		return fmt.Errorf("%w: preview.width must be between %d and %d, got %d", ErrInvalidValue, MinPreview, MaxPreview, w)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero, meaning the
// converter default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: timeout must be in (0, %s], got %s", ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// Encode renders the configuration as YAML.
func (c *Config) Encode() ([]byte, error) {
	return yamlutil.Marshal(c)
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a config by file path or by name. Names are looked up
// in the current directory, then in the user config directory, with the
// .yaml and .yml extensions. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
