package txt2pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-txt2pdf/internal/assets"
	"github.com/alnah/go-txt2pdf/internal/fileutil"
	"github.com/alnah/go-txt2pdf/internal/format"
	"github.com/alnah/go-txt2pdf/internal/pipeline"
	"github.com/alnah/go-txt2pdf/internal/source"
)

var (
	_ pipeline.HTMLConverter = (*pipeline.ParagraphRenderer)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
)

// Converter turns directive documents into HTML and PDF. Each Convert call
// formats its document with fresh state; the converter itself only keeps
// the stylesheet, the layout and the browser.
//
// A Converter is not safe for concurrent use. Use a ConverterPool to
// convert documents in parallel.
type Converter struct {
	cfg           converterConfig
	styleLoader   assets.StyleLoader
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter. The browser starts on the first PDF.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			layout:  format.DefaultLayout(),
		},
		styleLoader:   assets.NewEmbeddedLoader(),
		htmlConverter: pipeline.NewParagraphRenderer(),
		cssInjector:   &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.layout.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewStyleResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.styleLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// Layout returns the layout applied to every document.
func (c *Converter) Layout() Layout {
	return c.cfg.layout
}

// Convert formats input and renders it. Formatting errors are wrapped in
// ErrParse and carry the failing line number. Internal panics are returned
// as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	paragraphs, err := c.paragraphs(input)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, input.Title, paragraphs)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		Paragraphs: paragraphs,
		HTML:       []byte(htmlContent),
	}
	if input.HTMLOnly {
		return res, nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.Page, Footer: input.Footer})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Preview formats input and renders it as plain text wrapped to width
// columns. No browser is involved. Paragraphs are rendered as the builder
// closes them.
func (c *Converter) Preview(ctx context.Context, input Input, width int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	lines, err := c.lines(input)
	if err != nil {
		return "", err
	}

	renderer := pipeline.NewTextRenderer(width, c.cfg.layout)
	var out strings.Builder
	sink := func(p format.Paragraph) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		block := renderer.Render([]format.Paragraph{p})
		if block == "" {
			return nil
		}
		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(block)
		return nil
	}

	b := format.NewBuilder(c.cfg.layout, format.WithSink(sink))
	for _, line := range lines {
		if err := b.Feed(line); err != nil {
			return "", parseError(err)
		}
	}
	if _, err := b.Close(); err != nil {
		return "", parseError(err)
	}
	return out.String(), nil
}

// Close releases the browser.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// paragraphs reads and formats the document of input.
func (c *Converter) paragraphs(input Input) ([]Paragraph, error) {
	lines, err := c.lines(input)
	if err != nil {
		return nil, err
	}
	paragraphs, err := format.Build(lines, c.cfg.layout)
	if err != nil {
		return nil, parseError(err)
	}
	return paragraphs, nil
}

// lines returns input.Lines, or input.Text split and cleaned.
func (c *Converter) lines(input Input) ([]string, error) {
	lines := input.Lines
	if lines == nil {
		var err error
		if lines, err = source.ReadString(input.Text); err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	return lines, nil
}

func parseError(err error) error {
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// resolveStyle turns the style option into CSS. An empty option selects
// the default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	switch {
	case fileutil.IsCSS(input):
		c.cfg.resolvedStyle = input
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
	default:
		css, err := c.styleLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		c.cfg.resolvedStyle = css
	}
	return nil
}

// validateInput checks the per-document settings. The CLI validates its
// config earlier; library callers get the same checks here.
func validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Footer.Validate()
}
