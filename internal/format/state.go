package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxIndent is the deepest indent level a document can reach.
const MaxIndent = 8

// Sentinel errors for directive handling.
var (
	ErrInvalidIndent = errors.New("invalid indent argument")
	ErrEmptyLine     = errors.New("empty input line")
)

// SizeClass selects the font size of appended text.
type SizeClass int

const (
	SizeNormal SizeClass = iota
	SizeLarge
)

// String returns the directive name of the size class.
func (s SizeClass) String() string {
	switch s {
	case SizeNormal:
		return "normal"
	case SizeLarge:
		return "large"
	}
	return fmt.Sprintf("SizeClass(%d)", int(s))
}

// FontStyle selects the typeface variant of appended text.
type FontStyle int

const (
	StyleRegular FontStyle = iota
	StyleBold
	StyleItalic
)

// String returns the directive name of the font style.
func (f FontStyle) String() string {
	switch f {
	case StyleRegular:
		return "regular"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italics"
	}
	return fmt.Sprintf("FontStyle(%d)", int(f))
}

// State holds the formatting attributes active at a point in a document.
// The zero value is the document default: no indent, left aligned,
// normal size, regular style.
type State struct {
	Indent int
	Fill   bool
	Size   SizeClass
	Style  FontStyle
}

// indentDirective is matched case-insensitively anywhere in a directive.
const indentDirective = ".indent"

var lower = cases.Lower(language.Und)

// SetIndent stores n clamped to [0, MaxIndent].
func (s *State) SetIndent(n int) {
	switch {
	case n >= MaxIndent:
		s.Indent = MaxIndent
	case n <= 0:
		s.Indent = 0
	default:
		s.Indent = n
	}
}

// Apply interprets one directive line and updates the state.
// Unknown directives are ignored. The only failure is a missing or
// non-integer argument to an indent directive, in which case the state
// is left unchanged.
func (s *State) Apply(directive string) error {
	if strings.Contains(lower.String(directive), indentDirective) {
		delta, err := parseIndentDelta(directive)
		if err != nil {
			return err
		}
		s.shiftIndent(delta)
		return nil
	}

	switch directive {
	case ".fill":
		s.Fill = true
	case ".nofill":
		s.Fill = false
	case ".regular":
		s.Style = StyleRegular
	case ".bold":
		s.Style = StyleBold
	case ".italics":
		s.Style = StyleItalic
	case ".large":
		s.Size = SizeLarge
	case ".normal":
		s.Size = SizeNormal
	}
	return nil
}

// shiftIndent adds delta to the indent, saturating at both ends.
// Deltas beyond MaxIndent saturate directly so the sum cannot overflow.
func (s *State) shiftIndent(delta int) {
	switch {
	case delta >= MaxIndent:
		s.SetIndent(MaxIndent)
	case delta <= -MaxIndent:
		s.SetIndent(0)
	default:
		s.SetIndent(s.Indent + delta)
	}
}

// parseIndentDelta reads the signed integer in the second
// whitespace-separated token of an indent directive.
func parseIndentDelta(directive string) (int, error) {
	fields := strings.Fields(directive)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: missing amount in %q", ErrInvalidIndent, directive)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidIndent, fields[1])
	}
	return n, nil
}
