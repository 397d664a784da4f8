package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hookkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hookkit",
	Short: "Pre-commit helpers: TDD marker checks and config merging",
	Long: `hookkit bundles small repository hooks: a linter that enforces TDD
markers on pytest tests and a non-destructive JSON/TOML config merger.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(*cobra.Command, []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	},
}

// exitError carries a process status out of a command without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to .hookkit.yaml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("log-level", "", "log level for stderr diagnostics (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// main runs the root command and exits with the status derived from its error.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Colored(version.Current().Version)
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}

// exitCode maps a command error onto a process status. Errors other than
// exitError are printed to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
