package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hookkit/internal/diagfmt"
	"hookkit/internal/document"
	"hookkit/internal/merge"
	"hookkit/internal/observ"
)

var (
	mergeOutput string
	mergeType   string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <base> <additions>",
	Short: "Merge additions into a JSON or TOML config without overwriting it",
	Long: `Deep-merge the additions document into the base document. Values already
present in base always win; missing keys are added, nested tables are merged
recursively and lists gain the additions' elements they do not yet contain.

The result is written back to base unless --output is given. A missing base
file is treated as empty.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file (default: base file)")
	mergeCmd.Flags().StringVarP(&mergeType, "type", "t", "auto", "file type (json|toml|auto); auto detects from the base extension")
}

type mergeRequest struct {
	base      string
	additions string
	output    string
	typ       string
	quiet     bool
	color     bool
	logger    *zap.Logger
	timer     *observ.Timer
}

func runMerge(cmd *cobra.Command, args []string) error {
	req := mergeRequest{
		base:      args[0],
		additions: args[1],
		output:    mergeOutput,
		typ:       mergeType,
		quiet:     app.quiet,
		color:     app.color,
		logger:    app.logger,
	}
	if !cmd.Flags().Changed("type") {
		req.typ = app.cfg.Merge.Type
	}
	if app.timings {
		req.timer = observ.NewTimer()
	}
	code := mergeFiles(cmd.OutOrStdout(), req)
	printTimings(cmd.ErrOrStderr(), req.timer)
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// mergeFiles resolves the format, runs the merge and prints the user-facing
// outcome to out. It returns the process status.
func mergeFiles(out io.Writer, req mergeRequest) int {
	logger := req.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	palette := diagfmt.NewPalette(req.color)
	fail := func(format string, args ...any) int {
		_, _ = fmt.Fprintln(out, palette.Err.Sprintf(format, args...))
		return 1
	}

	requested, err := document.ParseFormat(req.typ)
	if err != nil {
		return fail("Error: %v", err)
	}
	format, err := document.Resolve(requested, req.base)
	if err != nil {
		var extErr *document.UnknownExtensionError
		if errors.As(err, &extErr) {
			fail("Error: Cannot auto-detect type from extension '%s'", extErr.Ext)
			_, _ = fmt.Fprintln(out, "Please specify --type json or --type toml")
			return 1
		}
		return fail("Error: %v", err)
	}
	logger.Debug("resolved format",
		zap.String("requested", requested.String()),
		zap.String("format", format.String()),
	)

	outcome, err := merge.Run(merge.Options{
		BasePath:      req.base,
		AdditionsPath: req.additions,
		OutputPath:    req.output,
		Format:        format,
		Logger:        logger,
		Timer:         req.timer,
		Warn: func(msg string) {
			if !req.quiet {
				_, _ = fmt.Fprintln(out, palette.Warn.Sprint("Warning: "+msg))
			}
		},
	})
	if err != nil {
		return fail("Error during merge: %v", err)
	}
	if !req.quiet {
		_, _ = fmt.Fprintln(out, palette.OK.Sprintf("✓ Merged %s + %s → %s",
			filepath.Base(req.base), filepath.Base(req.additions), outcome.OutputPath))
	}
	return 0
}
