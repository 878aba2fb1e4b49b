package txt2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-txt2pdf/internal/format"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Footer positions.
const (
	FooterLeft   = "left"
	FooterCenter = "center"
	FooterRight  = "right"
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter, portrait, half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks page settings case-insensitively. A nil receiver means
// defaults and is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Footer configures the footer Chrome prints on every page.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string // printed as is
	Text           string
}

// Validate checks the footer position. A nil footer is valid.
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", FooterLeft, FooterCenter, FooterRight:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Input is one document to convert. Lines, when set, are used as given and
// must already be free of empty lines; otherwise Text is read the way a
// document file is read.
type Input struct {
	Text     string        // raw document text
	Lines    []string      // pre-split non-empty lines; takes precedence over Text
	Title    string        // HTML <title>, default "Document"
	CSS      string        // extra CSS appended after the converter style
	Page     *PageSettings // nil = defaults
	Footer   *Footer       // nil = no footer
	HTMLOnly bool          // skip PDF rendering
}

// Paragraph, TextRun, Alignment and Layout are the formatting types
// produced and consumed by the converter.
type (
	Paragraph = format.Paragraph
	TextRun   = format.TextRun
	Alignment = format.Alignment
	Layout    = format.Layout
)

// DefaultLayout returns 14pt body text, 25pt large text and 20pt indents.
func DefaultLayout() Layout {
	return format.DefaultLayout()
}

// ConvertResult holds every stage of a conversion.
type ConvertResult struct {
	Paragraphs []Paragraph
	HTML       []byte
	PDF        []byte // nil when Input.HTMLOnly
}

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, path or CSS
	resolvedStyle string
	assetPath     string
	layout        Layout
}

const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-document rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("txt2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the stylesheet: a style name ("serif"), a CSS file
// path ("./house.css") or CSS content ("p { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/ folder overrides the
// built-in styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLayout sets the font sizes and indent width used for every document.
func WithLayout(l Layout) Option {
	return func(c *Converter) {
		c.cfg.layout = l
	}
}
