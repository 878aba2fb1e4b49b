package format

// Notes:
// - Scenarios mirror real documents: style persistence across breakpoints,
//   indentation, justification and the trailing flush
// - go-cmp diffs whole paragraph slices so run order and attributes are
//   checked together

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func normal(text string) TextRun {
	return TextRun{Text: text, Size: DefaultNormalSize}
}

func bold(text string) TextRun {
	return TextRun{Text: text, Size: DefaultNormalSize, Bold: true}
}

// ---------------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------------

func TestIsBreakpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{".paragraph", true},
		{".indent 3", true},
		{".indent -1", true},
		{".fill", true},
		{".large", true},
		{".normal", true},
		{".bold", false},
		{".italics", false},
		{".regular", false},
		{".nofill", false},
		{".foobar", false},
		{".Paragraph", false},
		{".INDENT 2", false},
		{"plain text", false},
		{"text mentioning .indent inline", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			if got := IsBreakpoint(tt.line); got != tt.want {
				t.Errorf("IsBreakpoint(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{".bold", true},
		{".", true},
		{".unknown thing", true},
		{"Hello", false},
		{" .bold", false},
		{"a.b", false},
	}
	for _, tt := range tests {
		if got := IsDirective(tt.line); got != tt.want {
			t.Errorf("IsDirective(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []Paragraph
	}{
		{
			name:  "style persists across paragraph break",
			lines: []string{".bold", "Hello world", ".paragraph", "Bye"},
			want: []Paragraph{
				{Runs: []TextRun{bold("Hello world")}},
				{Runs: []TextRun{bold("Bye")}},
			},
		},
		{
			name:  "indent sets margin",
			lines: []string{".indent 2", "Indented text"},
			want: []Paragraph{
				{},
				{Runs: []TextRun{normal("Indented text")}, MarginLeft: 40},
			},
		},
		{
			name:  "fill justifies",
			lines: []string{".fill", "Justified paragraph text"},
			want: []Paragraph{
				{},
				{Runs: []TextRun{normal("Justified paragraph text")}, Align: AlignJustify},
			},
		},
		{
			name:  "trailing text is flushed",
			lines: []string{"one", "two"},
			want: []Paragraph{
				{Runs: []TextRun{normal("one"), normal("two")}},
			},
		},
		{
			name:  "empty input yields one empty paragraph",
			lines: nil,
			want:  []Paragraph{{}},
		},
		{
			name:  "consecutive breakpoints emit empty paragraphs",
			lines: []string{".paragraph", ".paragraph", "x"},
			want: []Paragraph{
				{},
				{},
				{Runs: []TextRun{normal("x")}},
			},
		},
		{
			name:  "non-breakpoint directives stay in paragraph",
			lines: []string{"a", ".bold", "b", ".italics", "c", ".regular", "d", ".nofill", "e"},
			want: []Paragraph{
				{Runs: []TextRun{
					normal("a"),
					bold("b"),
					{Text: "c", Size: DefaultNormalSize, Italic: true},
					normal("d"),
					normal("e"),
				}},
			},
		},
		{
			name:  "large closes paragraph and resizes",
			lines: []string{"small", ".large", "Title", ".normal", "body"},
			want: []Paragraph{
				{Runs: []TextRun{normal("small")}},
				{Runs: []TextRun{{Text: "Title", Size: DefaultLargeSize}}},
				{Runs: []TextRun{normal("body")}},
			},
		},
		{
			name:  "last append decides alignment",
			lines: []string{".fill", "justified", ".nofill", "left"},
			want: []Paragraph{
				{},
				{Runs: []TextRun{normal("justified"), normal("left")}, Align: AlignLeft},
			},
		},
		{
			name:  "unknown directives contribute nothing",
			lines: []string{".foobar", "text", ".baz 12"},
			want: []Paragraph{
				{Runs: []TextRun{normal("text")}},
			},
		},
		{
			name:  "text containing indent directive breaks paragraph",
			lines: []string{"first", "see .indent docs"},
			want: []Paragraph{
				{Runs: []TextRun{normal("first")}},
				{Runs: []TextRun{normal("see .indent docs")}},
			},
		},
		{
			name:  "indent clamps to max margin",
			lines: []string{".indent 20", "deep", ".indent -100", "shallow"},
			want: []Paragraph{
				{},
				{Runs: []TextRun{normal("deep")}, MarginLeft: 160},
				{Runs: []TextRun{normal("shallow")}},
			},
		},
		{
			name:  "text is kept literally",
			lines: []string{"  leading spaces", "<b>&amp;</b>"},
			want: []Paragraph{
				{Runs: []TextRun{normal("  leading spaces"), normal("<b>&amp;</b>")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Build(tt.lines, DefaultLayout())
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_CustomLayout(t *testing.T) {
	t.Parallel()

	layout := Layout{NormalSize: 10, LargeSize: 18, IndentWidth: 12}
	got, err := Build([]string{".indent 3", ".large", "x"}, layout)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	want := []Paragraph{
		{},
		{},
		{Runs: []TextRun{{Text: "x", Size: 18}}, MarginLeft: 36},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "bad indent amount",
			lines:   []string{"ok", ".indent x"},
			wantErr: ErrInvalidIndent,
			wantMsg: "line 2",
		},
		{
			name:    "missing indent amount",
			lines:   []string{".indent"},
			wantErr: ErrInvalidIndent,
			wantMsg: "line 1",
		},
		{
			name:    "empty line",
			lines:   []string{"a", "b", ""},
			wantErr: ErrEmptyLine,
			wantMsg: "line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Build(tt.lines, DefaultLayout())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Build() returned %d paragraphs on error, want nil", len(got))
			}
			if msg := err.Error(); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error %q does not mention %q", msg, tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

func TestBuilder_ErrorIsSticky(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultLayout())
	first := b.Feed(".indent ?")
	if first == nil {
		t.Fatal("expected error")
	}
	if err := b.Feed("more text"); !errors.Is(err, ErrInvalidIndent) {
		t.Errorf("Feed after error = %v, want sticky ErrInvalidIndent", err)
	}
	if _, err := b.Close(); !errors.Is(err, ErrInvalidIndent) {
		t.Errorf("Close after error = %v, want ErrInvalidIndent", err)
	}
}

func TestBuilder_Closed(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultLayout())
	if _, err := b.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := b.Feed("x"); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("Feed after Close = %v, want ErrBuilderClosed", err)
	}
	if _, err := b.Close(); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("second Close = %v, want ErrBuilderClosed", err)
	}
}

func TestBuilder_Sink(t *testing.T) {
	t.Parallel()

	var got []Paragraph
	b := NewBuilder(DefaultLayout(), WithSink(func(p Paragraph) error {
		got = append(got, p)
		return nil
	}))

	for _, line := range []string{"a", ".paragraph", "b"} {
		if err := b.Feed(line); err != nil {
			t.Fatalf("Feed(%q): %v", line, err)
		}
	}
	if len(got) != 1 {
		t.Fatalf("sink saw %d paragraphs before Close, want 1", len(got))
	}

	collected, err := b.Close()
	if err != nil {
		t.Fatalf("Close(): %v", err)
	}
	if collected != nil {
		t.Errorf("Close() with sink returned %v, want nil", collected)
	}
	want := []Paragraph{
		{Runs: []TextRun{normal("a")}},
		{Runs: []TextRun{normal("b")}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sink paragraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_SinkError(t *testing.T) {
	t.Parallel()

	errFull := errors.New("renderer full")
	b := NewBuilder(DefaultLayout(), WithSink(func(Paragraph) error { return errFull }))

	if err := b.Feed("text"); err != nil {
		t.Fatalf("Feed(text): %v", err)
	}
	if err := b.Feed(".paragraph"); !errors.Is(err, errFull) {
		t.Errorf("Feed(.paragraph) = %v, want sink error", err)
	}
}

func TestBuilder_StateSnapshot(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultLayout())
	for _, line := range []string{".bold", ".indent 3", ".large", ".fill"} {
		if err := b.Feed(line); err != nil {
			t.Fatalf("Feed(%q): %v", line, err)
		}
	}
	want := State{Indent: 3, Fill: true, Size: SizeLarge, Style: StyleBold}
	if got := b.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestBuild_IsolatedPerDocument(t *testing.T) {
	t.Parallel()

	if _, err := Build([]string{".bold", ".indent 4", "first doc"}, DefaultLayout()); err != nil {
		t.Fatal(err)
	}
	got, err := Build([]string{"second doc"}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	want := []Paragraph{{Runs: []TextRun{normal("second doc")}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state leaked between documents (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Layout and Paragraph helpers
// ---------------------------------------------------------------------------

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"default", DefaultLayout(), false},
		{"zero indent width", Layout{NormalSize: 12, LargeSize: 20}, false},
		{"zero normal size", Layout{LargeSize: 20, IndentWidth: 10}, true},
		{"negative large size", Layout{NormalSize: 12, LargeSize: -1}, true},
		{"negative indent width", Layout{NormalSize: 12, LargeSize: 20, IndentWidth: -3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.layout.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Validate() = %v, want ErrInvalidLayout", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLayout_FontSize(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	if got := l.FontSize(SizeLarge); got != 25 {
		t.Errorf("FontSize(SizeLarge) = %v, want 25", got)
	}
	if got := l.FontSize(SizeNormal); got != 14 {
		t.Errorf("FontSize(SizeNormal) = %v, want 14", got)
	}
}

func TestParagraph_Text(t *testing.T) {
	t.Parallel()

	p := Paragraph{Runs: []TextRun{normal("Hello"), bold("world")}}
	if got := p.Text(); got != "Hello world" {
		t.Errorf("Text() = %q, want %q", got, "Hello world")
	}
	if p.Empty() {
		t.Error("Empty() = true for paragraph with runs")
	}
	if !(Paragraph{}).Empty() {
		t.Error("Empty() = false for zero paragraph")
	}
}
