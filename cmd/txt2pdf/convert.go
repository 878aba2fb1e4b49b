package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	txt2pdf "github.com/alnah/go-txt2pdf"
	"github.com/alnah/go-txt2pdf/internal/config"
	"github.com/alnah/go-txt2pdf/internal/dateutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no input specified")
	ErrNoTextFiles    = errors.New("no .txt files found")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrBatchFailed    = errors.New("conversion failed")
)

// conversionParams groups the per-document settings shared by a batch.
type conversionParams struct {
	title      string
	page       *txt2pdf.PageSettings
	footer     *txt2pdf.Footer
	htmlOutput bool
	htmlOnly   bool
}

// runConvertCmd parses flags, builds the converter pool and runs the batch.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.Timeout)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Workers
	}

	opts := converterOptions(cfg, timeout)
	poolSize := txt2pdf.ResolvePoolSize(workers)
	pool := txt2pdf.NewConverterPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	return runConvert(ctx, positional, flags, cfg, &poolAdapter{pool: pool}, env)
}

// runConvert discovers the input files and converts them with pool.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, cfg *config.Config, pool Pool, env *Environment) error {
	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoTextFiles, inputPath)
	}

	params, err := buildParams(flags, cfg, env.Now())
	if err != nil {
		return err
	}

	// Style and layout errors are the same for every file: report them once.
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(conv)

	results := convertBatch(ctx, pool, files, params)
	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed == 0 {
		return nil
	}
	return batchError(results, failed)
}

// batchError keeps the first failure wrapped so the exit code follows it.
// Details were already printed per file.
func batchError(results []ConversionResult, failed int) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%w: %d of %d file(s): %w", ErrBatchFailed, failed, len(results), r.Err)
		}
	}
	return ErrBatchFailed
}

// loadConfig loads the config named by the flag, else by TXT2PDF_CONFIG,
// else returns an empty config.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags into cfg. Flags win.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}
	if flags.footer.date != "" {
		cfg.Footer.Date = flags.footer.date
		cfg.Footer.Enabled = true
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Enabled = true
	}
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}

	mergeLayoutFlags(flags.layout, cfg)
}

func mergeLayoutFlags(f layoutFlags, cfg *config.Config) {
	if f.normalSize > 0 {
		cfg.Layout.NormalSize = f.normalSize
	}
	if f.largeSize > 0 {
		cfg.Layout.LargeSize = f.largeSize
	}
	if f.indentWidth > 0 {
		cfg.Layout.IndentWidth = f.indentWidth
	}
}

// resolveTimeoutWithEnv picks the timeout: flag > env > config. Zero means
// the converter default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagValue)
		}
		if d > config.MaxTimeout {
			return 0, fmt.Errorf("%w: %s (maximum is %s)", ErrInvalidTimeout, flagValue, config.MaxTimeout)
		}
		return d, nil
	}
	if envValue > 0 {
		return min(envValue, config.MaxTimeout), nil
	}
	if configValue != "" {
		cfg := config.Config{Timeout: configValue}
		return cfg.TimeoutDuration()
	}
	return 0, nil
}

// converterOptions turns the merged config into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration) []txt2pdf.Option {
	opts := []txt2pdf.Option{txt2pdf.WithLayout(layoutFromConfig(cfg))}
	if cfg.Style != "" {
		opts = append(opts, txt2pdf.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, txt2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, txt2pdf.WithTimeout(timeout))
	}
	return opts
}

// layoutFromConfig starts from the default layout and applies the non-zero
// config values.
func layoutFromConfig(cfg *config.Config) txt2pdf.Layout {
	l := txt2pdf.DefaultLayout()
	if cfg.Layout.NormalSize > 0 {
		l.NormalSize = cfg.Layout.NormalSize
	}
	if cfg.Layout.LargeSize > 0 {
		l.LargeSize = cfg.Layout.LargeSize
	}
	if cfg.Layout.IndentWidth > 0 {
		l.IndentWidth = cfg.Layout.IndentWidth
	}
	return l
}

func buildParams(flags *convertFlags, cfg *config.Config, now time.Time) (*conversionParams, error) {
	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}
	footer, err := buildFooter(cfg, now)
	if err != nil {
		return nil, err
	}
	return &conversionParams{
		title:      flags.title,
		page:       page,
		footer:     footer,
		htmlOutput: flags.outputMode.html,
		htmlOnly:   flags.outputMode.htmlOnly,
	}, nil
}

// buildPageSettings returns nil when nothing is configured, leaving the
// converter defaults in place.
func buildPageSettings(cfg *config.Config) (*txt2pdf.PageSettings, error) {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil, nil
	}

	ps := txt2pdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// buildFooter returns nil unless the footer is enabled. The date is
// resolved once per batch so every file carries the same value.
func buildFooter(cfg *config.Config, now time.Time) (*txt2pdf.Footer, error) {
	if !cfg.Footer.Enabled {
		return nil, nil
	}

	date, err := dateutil.ResolveDate(cfg.Footer.Date, now)
	if err != nil {
		return nil, fmt.Errorf("footer date: %w", err)
	}

	f := &txt2pdf.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Date:           date,
		Text:           cfg.Footer.Text,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
