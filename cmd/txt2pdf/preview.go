package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	txt2pdf "github.com/alnah/go-txt2pdf"
	"github.com/alnah/go-txt2pdf/internal/config"
	"github.com/alnah/go-txt2pdf/internal/pipeline"
	"github.com/alnah/go-txt2pdf/internal/source"
)

// stdinArg reads the document from standard input.
const stdinArg = "-"

// runPreviewCmd prints a document as wrapped plain text. No browser starts.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: preview takes exactly one file (or - for stdin)", ErrUsage)
	}
	if flags.width != 0 && (flags.width < config.MinPreview || flags.width > config.MaxPreview) {
		return fmt.Errorf("%w: --width must be between %d and %d, got %d", ErrUsage, config.MinPreview, config.MaxPreview, flags.width)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeLayoutFlags(flags.layout, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	lines, err := readPreviewInput(positional[0], env.Stdin)
	if err != nil {
		return err
	}

	conv, err := txt2pdf.NewConverter(txt2pdf.WithLayout(layoutFromConfig(cfg)))
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	width := resolvePreviewWidth(flags.width, cfg.Preview.Width, env.TermWidth)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Preview width: %d\n", width)
	}

	text, err := conv.Preview(ctx, txt2pdf.Input{Lines: lines}, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Stdout, text)
	return err
}

func readPreviewInput(arg string, stdin io.Reader) ([]string, error) {
	if arg == stdinArg {
		if stdin == nil {
			return nil, ErrNoInput
		}
		return source.ReadLines(stdin)
	}
	if err := validateTextExtension(arg); err != nil {
		return nil, err
	}
	return source.ReadFile(arg)
}

// resolvePreviewWidth picks the wrap width: flag > config > terminal >
// default. Terminal widths are clamped to the accepted range.
func resolvePreviewWidth(flagWidth, configWidth int, termWidth func() int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if configWidth > 0 {
		return configWidth
	}
	if termWidth != nil {
		if w := termWidth(); w > 0 {
			return max(config.MinPreview, min(w, config.MaxPreview))
		}
	}
	return pipeline.DefaultPreviewWidth
}
