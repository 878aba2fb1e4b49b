package txt2pdf

// Notes:
// - rodConverter is tested with a mock renderer; no browser starts
// - buildFooterTemplate and buildPDFOptions are pure and tested directly
// - resolvePageDimensions covers all page sizes and orientations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-txt2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	CalledOpts *pdfOptions
	Content    string
	Closed     int
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil { // #nosec G304 -- test temp file
		m.Content = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed++
	return nil
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - PDF Conversion with Mock Renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr bool
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>Test</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.7 fake pdf content")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: errors.New("browser crashed")},
			wantErr: true,
		},
		{
			name: "empty HTML is valid",
			html: "",
			mock: &mockRenderer{Result: []byte("%PDF-1.7")},
		},
		{
			name: "unicode content is written as is",
			html: "<html><body>Grüße 日本語</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.7 unicode")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			converter := &rodConverter{renderer: tt.mock}
			opts := &pdfOptions{Page: DefaultPageSettings()}

			result, err := converter.ToPDF(context.Background(), tt.html, opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(result) != string(tt.mock.Result) {
				t.Errorf("expected result %q, got %q", tt.mock.Result, result)
			}
			if !strings.Contains(filepath.Base(tt.mock.CalledWith), fileutil.TempPrefix) {
				t.Errorf("expected temp file path with %q, got %q", fileutil.TempPrefix, tt.mock.CalledWith)
			}
			if !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("expected .html temp file, got %q", tt.mock.CalledWith)
			}
			if tt.mock.Content != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.Content, tt.html)
			}
			if tt.mock.CalledOpts != opts {
				t.Error("options were not forwarded to the renderer")
			}
		})
	}
}

func TestRodConverter_ToPDF_RemovesTempFile(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{Result: []byte("%PDF-1.7")}
	converter := &rodConverter{renderer: mock}

	if _, err := converter.ToPDF(context.Background(), "<p>x</p>", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(mock.CalledWith); !os.IsNotExist(err) {
		t.Errorf("temp file %q still exists after ToPDF", mock.CalledWith)
	}
}

// ---------------------------------------------------------------------------
// TestNewRodConverter - Converter Creation
// ---------------------------------------------------------------------------

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(defaultTimeout)

	renderer, ok := converter.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer = %T, want *rodRenderer", converter.renderer)
	}
	if renderer.timeout != defaultTimeout {
		t.Errorf("expected timeout %v, got %v", defaultTimeout, renderer.timeout)
	}
	if renderer.browser != nil {
		t.Error("browser started before first render")
	}
}

func TestRodRenderer_RenderFromFile_CancelledContext(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(defaultTimeout)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.RenderFromFile(ctx, "/nonexistent.html", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if renderer.browser != nil {
		t.Error("browser launched for a cancelled context")
	}
}

// ---------------------------------------------------------------------------
// TestBuildFooterTemplate - Footer Template Generation
// ---------------------------------------------------------------------------

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		footer   *Footer
		margin   float64
		wantPart string
		wantNot  string
	}{
		{
			name:     "nil footer returns empty span",
			wantPart: "<span></span>",
		},
		{
			name:     "no visible parts returns empty span",
			footer:   &Footer{Position: FooterLeft},
			wantPart: "<span></span>",
		},
		{
			name:     "page number only",
			footer:   &Footer{ShowPageNumber: true},
			wantPart: `<span class="pageNumber"></span>/<span class="totalPages"></span>`,
		},
		{
			name:     "date only",
			footer:   &Footer{Date: "2026-10-18"},
			wantPart: "2026-10-18",
		},
		{
			name:     "text only",
			footer:   &Footer{Text: "Footer Text"},
			wantPart: "Footer Text",
		},
		{
			name:     "parts joined in order",
			footer:   &Footer{ShowPageNumber: true, Date: "2026-10-18", Text: "Draft"},
			wantPart: `</span> - 2026-10-18 - Draft`,
		},
		{
			name:     "left position",
			footer:   &Footer{Text: "Test", Position: "left"},
			wantPart: "text-align: left",
		},
		{
			name:     "center position is case-insensitive",
			footer:   &Footer{Text: "Test", Position: "CENTER"},
			wantPart: "text-align: center",
		},
		{
			name:     "empty position defaults to right",
			footer:   &Footer{Text: "Test"},
			wantPart: "text-align: right",
		},
		{
			name:     "padding follows page margin",
			footer:   &Footer{Text: "Test"},
			margin:   0.75,
			wantPart: "padding: 0 0.75in",
		},
		{
			name:    "HTML escapes text",
			footer:  &Footer{Text: "<script>alert('xss')</script>"},
			wantNot: "<script>",
		},
		{
			name:    "HTML escapes date",
			footer:  &Footer{Date: "<b>today</b>"},
			wantNot: "<b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := buildFooterTemplate(tt.footer, tt.margin)

			if tt.wantPart != "" && !strings.Contains(result, tt.wantPart) {
				t.Errorf("expected %q in result, got: %s", tt.wantPart, result)
			}
			if tt.wantNot != "" && strings.Contains(result, tt.wantNot) {
				t.Errorf("expected %q NOT in result, got: %s", tt.wantNot, result)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolvePageDimensions - Page Dimension Calculation
// ---------------------------------------------------------------------------

func TestResolvePageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		page             *PageSettings
		hasFooter        bool
		wantW, wantH     float64
		wantMargin       float64
		wantBottomMargin float64
	}{
		{
			name:             "nil page uses letter portrait",
			wantW:            8.5,
			wantH:            11,
			wantMargin:       DefaultMargin,
			wantBottomMargin: DefaultMargin,
		},
		{
			name:             "a4 portrait",
			page:             &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 1},
			wantW:            8.27,
			wantH:            11.69,
			wantMargin:       1,
			wantBottomMargin: 1,
		},
		{
			name:             "legal landscape swaps sides",
			page:             &PageSettings{Size: PageSizeLegal, Orientation: OrientationLandscape, Margin: 0.5},
			wantW:            14,
			wantH:            8.5,
			wantMargin:       0.5,
			wantBottomMargin: 0.5,
		},
		{
			name:             "upper case values",
			page:             &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5},
			wantW:            11.69,
			wantH:            8.27,
			wantMargin:       0.5,
			wantBottomMargin: 0.5,
		},
		{
			name:             "unknown size falls back to letter",
			page:             &PageSettings{Size: "tabloid", Orientation: OrientationPortrait, Margin: 0.5},
			wantW:            8.5,
			wantH:            11,
			wantMargin:       0.5,
			wantBottomMargin: 0.5,
		},
		{
			name:             "zero margin uses default",
			page:             &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait},
			wantW:            8.5,
			wantH:            11,
			wantMargin:       DefaultMargin,
			wantBottomMargin: DefaultMargin,
		},
		{
			name:             "footer reserves extra bottom margin",
			page:             &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait, Margin: 1},
			hasFooter:        true,
			wantW:            8.5,
			wantH:            11,
			wantMargin:       1,
			wantBottomMargin: 1 + footerMarginExtra,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, margin, bottomMargin := resolvePageDimensions(tt.page, tt.hasFooter)
			if w != tt.wantW {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if h != tt.wantH {
				t.Errorf("height = %v, want %v", h, tt.wantH)
			}
			if margin != tt.wantMargin {
				t.Errorf("margin = %v, want %v", margin, tt.wantMargin)
			}
			if bottomMargin != tt.wantBottomMargin {
				t.Errorf("bottomMargin = %v, want %v", bottomMargin, tt.wantBottomMargin)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer_Close_Idempotent - Close Idempotency
// ---------------------------------------------------------------------------

func TestRodRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(defaultTimeout)

	for i := range 3 {
		if err := renderer.Close(); err != nil {
			t.Errorf("Close() call %d error = %v", i+1, err)
		}
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	t.Run("nil renderer", func(t *testing.T) {
		t.Parallel()

		converter := &rodConverter{renderer: nil}
		if err := converter.Close(); err != nil {
			t.Errorf("Close() with nil renderer should not error, got %v", err)
		}
	})

	t.Run("closes renderer", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{}
		converter := &rodConverter{renderer: mock}
		if err := converter.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if mock.Closed != 1 {
			t.Errorf("renderer closed %d times, want 1", mock.Closed)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - PDF Options Construction
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	renderer := &rodRenderer{timeout: defaultTimeout}

	t.Run("nil opts uses default margins", func(t *testing.T) {
		t.Parallel()

		pdfOpts := renderer.buildPDFOptions(nil)

		if *pdfOpts.MarginBottom != DefaultMargin {
			t.Errorf("expected margin %v, got %v", DefaultMargin, *pdfOpts.MarginBottom)
		}
		if pdfOpts.DisplayHeaderFooter {
			t.Error("expected no header/footer by default")
		}
		if !pdfOpts.PrintBackground {
			t.Error("expected backgrounds to be printed")
		}
	})

	t.Run("with footer increases bottom margin", func(t *testing.T) {
		t.Parallel()

		pdfOpts := renderer.buildPDFOptions(&pdfOptions{Footer: &Footer{Text: "Footer"}})

		expectedMargin := DefaultMargin + footerMarginExtra
		if *pdfOpts.MarginBottom != expectedMargin {
			t.Errorf("expected margin %v, got %v", expectedMargin, *pdfOpts.MarginBottom)
		}
		if !pdfOpts.DisplayHeaderFooter {
			t.Error("expected header/footer enabled")
		}
		if !strings.Contains(pdfOpts.FooterTemplate, "Footer") {
			t.Errorf("FooterTemplate = %q, want footer text", pdfOpts.FooterTemplate)
		}
		if pdfOpts.HeaderTemplate != "<span></span>" {
			t.Errorf("HeaderTemplate = %q, want empty span", pdfOpts.HeaderTemplate)
		}
	})

	t.Run("with page settings uses custom dimensions", func(t *testing.T) {
		t.Parallel()

		pdfOpts := renderer.buildPDFOptions(&pdfOptions{
			Page: &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1.0},
		})

		if *pdfOpts.PaperWidth != 11.69 {
			t.Errorf("PaperWidth = %v, want 11.69", *pdfOpts.PaperWidth)
		}
		if *pdfOpts.PaperHeight != 8.27 {
			t.Errorf("PaperHeight = %v, want 8.27", *pdfOpts.PaperHeight)
		}
		for name, got := range map[string]float64{
			"MarginTop":    *pdfOpts.MarginTop,
			"MarginBottom": *pdfOpts.MarginBottom,
			"MarginLeft":   *pdfOpts.MarginLeft,
			"MarginRight":  *pdfOpts.MarginRight,
		} {
			if got != 1.0 {
				t.Errorf("%s = %v, want 1.0", name, got)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestPageDimensions - Page Dimensions Map
// ---------------------------------------------------------------------------

func TestPageDimensions(t *testing.T) {
	t.Parallel()

	for _, size := range []string{PageSizeLetter, PageSizeA4, PageSizeLegal} {
		dims, ok := pageDimensions[size]
		if !ok {
			t.Errorf("missing page dimensions for size %q", size)
			continue
		}
		if dims.w <= 0 || dims.h <= dims.w {
			t.Errorf("%s: expected positive portrait dimensions, got %v x %v", size, dims.w, dims.h)
		}
	}
}
