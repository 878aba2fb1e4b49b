package txt2pdf

import (
	"errors"

	"github.com/alnah/go-txt2pdf/internal/assets"
	"github.com/alnah/go-txt2pdf/internal/format"
	"github.com/alnah/go-txt2pdf/internal/pipeline"
	"github.com/alnah/go-txt2pdf/internal/source"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input has no lines")
	ErrParse          = errors.New("failed to format document")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Document errors, wrapped in ErrParse by Convert.
	ErrInvalidIndent = format.ErrInvalidIndent
	ErrEmptyLine     = format.ErrEmptyLine
	ErrLineTooLong   = source.ErrLineTooLong
	ErrInvalidLayout = format.ErrInvalidLayout

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Style loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
