package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hookkit/internal/cache"
	"hookkit/internal/diagfmt"
	"hookkit/internal/observ"
	"hookkit/internal/tddtags"
)

const scanBucket = "scan"

var (
	checkUseCache bool
	checkMaxWidth int
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Verify that pytest tests carry a TDD marker",
	Long: `Check every Python test file among the arguments (test_*.py, *_test.py,
tests.py) and require each test method to carry exactly the configured TDD
marker decorator. Other arguments are ignored, so the command can be used
directly as a pre-commit hook.

Only the most important category of problems is reported: class-level
markers, then red/refactor markers, then untagged tests.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkUseCache, "cache", false, "cache per-file scan results (also tdd.cache in config)")
	checkCmd.Flags().IntVar(&checkMaxWidth, "max-width", 0, "truncate report entries to N columns (0 = unlimited)")
}

type checkOptions struct {
	rules    tddtags.Rules
	useCache bool
	cacheDir string
	maxWidth int
	color    bool
	logger   *zap.Logger
	timer    *observ.Timer
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := checkOptions{
		rules:    app.cfg.Rules(),
		useCache: checkUseCache || app.cfg.TDD.Cache,
		maxWidth: checkMaxWidth,
		color:    app.color,
		logger:   app.logger,
	}
	if app.timings {
		opts.timer = observ.NewTimer()
	}
	code, err := checkPaths(cmd.OutOrStdout(), args, opts)
	printTimings(cmd.ErrOrStderr(), opts.timer)
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// checkPaths runs the checker over paths, prints the report to out and
// returns the hook status.
func checkPaths(out io.Writer, paths []string, opts checkOptions) (int, error) {
	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.maxWidth < 0 {
		return 0, fmt.Errorf("--max-width must be >= 0, got %d", opts.maxWidth)
	}

	checker, err := tddtags.NewChecker(tddtags.Options{
		Rules:  opts.rules,
		Logger: logger,
		Cache:  openScanCache(opts, logger),
		Timer:  opts.timer,
	})
	if err != nil {
		return 0, err
	}
	result := checker.Check(paths)

	phase := opts.timer.Begin("report")
	defer func() { opts.timer.End(phase, result.Report.Category.String()) }()
	if !result.Report.Failed() {
		return 0, nil
	}
	err = diagfmt.Pretty(out, result.Report.Header, result.Report.Items, diagfmt.PrettyOpts{
		Color: opts.color,
		Width: opts.maxWidth,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to print report: %w", err)
	}
	return result.Report.ExitCode(), nil
}

// openScanCache opens the scan cache when enabled. Failures only disable caching.
func openScanCache(opts checkOptions, logger *zap.Logger) *cache.DiskCache {
	if !opts.useCache {
		return nil
	}
	dir := opts.cacheDir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir("hookkit"); err != nil {
			logger.Warn("scan cache disabled", zap.Error(err))
			return nil
		}
	}
	dc, err := cache.Open(dir, scanBucket)
	if err != nil {
		logger.Warn("scan cache disabled", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	logger.Debug("scan cache enabled", zap.String("dir", dir))
	return dc
}
