package pipeline

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-txt2pdf/internal/format"
)

// Preview defaults, in terminal columns.
const (
	DefaultPreviewWidth  = 80
	MinPreviewWidth      = 20
	DefaultIndentColumns = 4
	minTextColumns       = 10
)

// TextRenderer renders paragraphs as monospace text for terminals.
// Bold runs are wrapped in asterisks and italic runs in underscores.
type TextRenderer struct {
	Width         int     // total columns
	IndentColumns int     // columns per indent level
	IndentWidth   float64 // layout units per indent level
}

// NewTextRenderer creates a TextRenderer for the given width and layout.
// Widths below MinPreviewWidth are raised to it.
func NewTextRenderer(width int, layout format.Layout) *TextRenderer {
	if width < MinPreviewWidth {
		width = MinPreviewWidth
	}
	return &TextRenderer{
		Width:         width,
		IndentColumns: DefaultIndentColumns,
		IndentWidth:   layout.IndentWidth,
	}
}

// Render returns the text form of paragraphs. Paragraphs are separated by a
// blank line; empty paragraphs produce no output.
func (r *TextRenderer) Render(paragraphs []format.Paragraph) string {
	var b strings.Builder
	first := true
	for _, p := range paragraphs {
		if p.Empty() {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false

		margin := strings.Repeat(" ", r.marginColumns(p.MarginLeft))
		for _, line := range r.wrap(words(p), p.Align, r.Width-len(margin)) {
			b.WriteString(margin)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// marginColumns converts a layout margin back to an indent level.
func (r *TextRenderer) marginColumns(margin float64) int {
	if r.IndentWidth <= 0 || margin <= 0 {
		return 0
	}
	levels := int(math.Round(margin / r.IndentWidth))
	cols := levels * r.IndentColumns
	if limit := r.Width - minTextColumns; cols > limit {
		cols = max(limit, 0)
	}
	return cols
}

// words splits the runs of p into decorated words.
func words(p format.Paragraph) []string {
	var out []string
	for _, run := range p.Runs {
		fields := strings.Fields(run.Text)
		if len(fields) == 0 {
			continue
		}
		mark := ""
		switch {
		case run.Bold:
			mark = "*"
		case run.Italic:
			mark = "_"
		}
		fields[0] = mark + fields[0]
		fields[len(fields)-1] += mark
		out = append(out, fields...)
	}
	return out
}

// wrap fills words greedily into lines of at most width columns. A word
// wider than the line gets a line of its own. Justified lines, except the
// last, are padded to the full width.
func (r *TextRenderer) wrap(ws []string, align format.Alignment, width int) []string {
	if width < minTextColumns {
		width = minTextColumns
	}

	var lines [][]string
	var cur []string
	curWidth := 0
	for _, w := range ws {
		ww := runewidth.StringWidth(w)
		if len(cur) > 0 && curWidth+1+ww > width {
			lines = append(lines, cur)
			cur, curWidth = nil, 0
		}
		if len(cur) > 0 {
			curWidth++
		}
		cur = append(cur, w)
		curWidth += ww
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if align == format.AlignJustify && i < len(lines)-1 {
			out[i] = justify(line, width)
			continue
		}
		out[i] = strings.Join(line, " ")
	}
	return out
}

// justify spreads the missing columns over the gaps, leftmost gaps first.
func justify(line []string, width int) string {
	if len(line) < 2 {
		return strings.Join(line, " ")
	}

	used := 0
	for _, w := range line {
		used += runewidth.StringWidth(w)
	}
	gaps := len(line) - 1
	spaces := width - used
	if spaces < gaps {
		return strings.Join(line, " ")
	}

	var b strings.Builder
	for i, w := range line {
		b.WriteString(w)
		if i == gaps {
			break
		}
		n := spaces / gaps
		if i < spaces%gaps {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}
