package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hookkit/internal/cache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the hookkit scan cache",
	Long:  "Remove the per-user cache directory used by check --cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := cache.DefaultDir("hookkit")
	if err != nil {
		return fmt.Errorf("failed to locate cache directory: %w", err)
	}
	return cleanCache(cmd.OutOrStdout(), dir)
}

func cleanCache(out io.Writer, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(out, "cache directory not found\n")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	dc, err := cache.Open(dir, scanBucket)
	if err != nil {
		return err
	}
	if err := dc.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(out, "removed %s\n", dir)
	return nil
}
