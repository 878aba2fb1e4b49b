package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBuilderClosed is returned when a Builder is used after Close.
var ErrBuilderClosed = errors.New("builder already closed")

// IsDirective reports whether line is a directive rather than text.
// Callers must not pass an empty line.
func IsDirective(line string) bool {
	return line[0] == '.'
}

// IsBreakpoint reports whether line closes the paragraph being built.
// The check is independent of IsDirective: any line containing ".indent"
// is a breakpoint, while .nofill, .bold, .italics and .regular are not.
func IsBreakpoint(line string) bool {
	switch line {
	case ".paragraph", ".fill", ".large", ".normal":
		return true
	}
	return strings.Contains(line, indentDirective)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSink hands every closed paragraph to fn instead of collecting it.
// An error from fn stops the build.
func WithSink(fn func(Paragraph) error) BuilderOption {
	return func(b *Builder) {
		b.sink = fn
	}
}

// Builder turns a sequence of lines into paragraphs. A Builder owns the
// format state of exactly one document: create a new one per document.
// It is not safe for concurrent use.
type Builder struct {
	layout  Layout
	state   State
	current Paragraph
	out     []Paragraph
	sink    func(Paragraph) error
	line    int
	err     error
	closed  bool
}

// NewBuilder creates a Builder with the default state.
func NewBuilder(layout Layout, opts ...BuilderOption) *Builder {
	b := &Builder{layout: layout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns a copy of the current format state.
func (b *Builder) State() State {
	return b.state
}

// Feed processes the next line. After the first error every later call
// returns that same error.
func (b *Builder) Feed(line string) error {
	if b.closed {
		return ErrBuilderClosed
	}
	if b.err != nil {
		return b.err
	}
	b.line++

	if line == "" {
		b.err = fmt.Errorf("line %d: %w", b.line, ErrEmptyLine)
		return b.err
	}

	if IsBreakpoint(line) {
		if err := b.emit(); err != nil {
			b.err = fmt.Errorf("line %d: %w", b.line, err)
			return b.err
		}
	}

	if IsDirective(line) {
		if err := b.state.Apply(line); err != nil {
			b.err = fmt.Errorf("line %d: %w", b.line, err)
			return b.err
		}
		return nil
	}

	b.appendText(line)
	return nil
}

// Close flushes the paragraph in progress, even if empty, and returns the
// collected paragraphs. With a sink the returned slice is nil.
func (b *Builder) Close() ([]Paragraph, error) {
	if b.closed {
		return nil, ErrBuilderClosed
	}
	b.closed = true
	if b.err != nil {
		return nil, b.err
	}
	if err := b.emit(); err != nil {
		return nil, err
	}
	return b.out, nil
}

// appendText adds a run and restamps the paragraph attributes from the
// current state, so the last appended run decides margin and alignment.
func (b *Builder) appendText(text string) {
	b.current.Runs = append(b.current.Runs, newTextRun(text, b.state, b.layout))
	b.current.MarginLeft = b.layout.Margin(b.state.Indent)
	b.current.Align = AlignLeft
	if b.state.Fill {
		b.current.Align = AlignJustify
	}
}

func (b *Builder) emit() error {
	p := b.current
	b.current = Paragraph{}
	if b.sink != nil {
		return b.sink(p)
	}
	b.out = append(b.out, p)
	return nil
}

// Build converts lines into paragraphs. Either the whole document is
// converted or nil is returned with the error of the first failing line.
func Build(lines []string, layout Layout) ([]Paragraph, error) {
	b := NewBuilder(layout)
	for _, line := range lines {
		if err := b.Feed(line); err != nil {
			return nil, err
		}
	}
	return b.Close()
}
