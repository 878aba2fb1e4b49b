package main

import (
	"context"
	"errors"
	"os"

	txt2pdf "github.com/alnah/go-txt2pdf"
	"github.com/alnah/go-txt2pdf/internal/assets"
	"github.com/alnah/go-txt2pdf/internal/config"
	"github.com/alnah/go-txt2pdf/internal/dateutil"
	"github.com/alnah/go-txt2pdf/internal/hints"
	"github.com/alnah/go-txt2pdf/internal/source"
)

// Exit codes for the txt2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, document or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor maps an error to an exit code with errors.Is, so callers
// must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, txt2pdf.ErrBrowserConnect) ||
		errors.Is(err, txt2pdf.ErrPageCreate) ||
		errors.Is(err, txt2pdf.ErrPageLoad) ||
		errors.Is(err, txt2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Document errors come before I/O: a malformed line is the user's to fix.
	if errors.Is(err, txt2pdf.ErrParse) ||
		errors.Is(err, txt2pdf.ErrEmptyInput) ||
		errors.Is(err, txt2pdf.ErrLineTooLong) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, source.ErrReadInput) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoTextFiles) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, txt2pdf.ErrInvalidPageSize) ||
		errors.Is(err, txt2pdf.ErrInvalidOrientation) ||
		errors.Is(err, txt2pdf.ErrInvalidMargin) ||
		errors.Is(err, txt2pdf.ErrInvalidFooterPosition) ||
		errors.Is(err, txt2pdf.ErrInvalidLayout) ||
		errors.Is(err, txt2pdf.ErrStyleNotFound) ||
		errors.Is(err, txt2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns a "\n  hint: ..." suffix for errors users can act on.
// Batch failures get none: each file already printed its own.
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrBatchFailed):
		return ""
	case errors.Is(err, txt2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, txt2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.BuiltinStyles())
	case errors.Is(err, txt2pdf.ErrInvalidIndent):
		return hints.ForInvalidIndent()
	case errors.Is(err, txt2pdf.ErrParse):
		return hints.ForLineNumbers()
	}
	return ""
}
