package format

import (
	"errors"
	"fmt"
)

// Default layout policy, in points.
const (
	DefaultNormalSize  = 14
	DefaultLargeSize   = 25
	DefaultIndentWidth = 20
)

// ErrInvalidLayout is returned by Layout.Validate.
var ErrInvalidLayout = errors.New("invalid layout")

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignJustify
)

// String returns the CSS text-align keyword for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignJustify:
		return "justify"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// Layout maps abstract state attributes to physical units.
type Layout struct {
	NormalSize  float64 // font size for SizeNormal
	LargeSize   float64 // font size for SizeLarge
	IndentWidth float64 // left margin per indent level
}

// DefaultLayout returns the standard layout: 14pt body, 25pt large text,
// 20pt per indent level.
func DefaultLayout() Layout {
	return Layout{
		NormalSize:  DefaultNormalSize,
		LargeSize:   DefaultLargeSize,
		IndentWidth: DefaultIndentWidth,
	}
}

// Validate checks that all sizes are positive and the indent width is not negative.
func (l Layout) Validate() error {
	if l.NormalSize <= 0 {
		return fmt.Errorf("%w: normal size must be positive, got %v", ErrInvalidLayout, l.NormalSize)
	}
	if l.LargeSize <= 0 {
		return fmt.Errorf("%w: large size must be positive, got %v", ErrInvalidLayout, l.LargeSize)
	}
	if l.IndentWidth < 0 {
		return fmt.Errorf("%w: indent width must not be negative, got %v", ErrInvalidLayout, l.IndentWidth)
	}
	return nil
}

// FontSize resolves a size class to a font size.
func (l Layout) FontSize(s SizeClass) float64 {
	switch s {
	case SizeLarge:
		return l.LargeSize
	case SizeNormal:
		return l.NormalSize
	}
	return l.NormalSize
}

// Margin resolves an indent level to a left margin.
func (l Layout) Margin(indent int) float64 {
	return float64(indent) * l.IndentWidth
}

// TextRun is a span of literal text with the font attributes that were
// active when it was appended.
type TextRun struct {
	Text   string
	Size   float64
	Bold   bool
	Italic bool
}

// newTextRun resolves the state's size and style into a run.
func newTextRun(text string, st State, l Layout) TextRun {
	run := TextRun{Text: text, Size: l.FontSize(st.Size)}
	switch st.Style {
	case StyleBold:
		run.Bold = true
	case StyleItalic:
		run.Italic = true
	case StyleRegular:
	}
	return run
}

// Paragraph is an ordered sequence of runs sharing a left margin and an
// alignment.
type Paragraph struct {
	Runs       []TextRun
	MarginLeft float64
	Align      Alignment
}

// Empty reports whether the paragraph has no runs.
func (p Paragraph) Empty() bool {
	return len(p.Runs) == 0
}

// Text concatenates the text of all runs, separated by spaces.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, r := range p.Runs {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
