package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"hookkit/internal/document"
	"hookkit/internal/observ"
)

// Options describes one merge invocation. Format must already be resolved
// (FormatJSON or FormatTOML).
type Options struct {
	BasePath      string
	AdditionsPath string
	// OutputPath defaults to BasePath.
	OutputPath string
	Format     document.Format

	Logger *zap.Logger
	Timer  *observ.Timer
	// Warn receives user-facing warnings, e.g. a missing base file.
	Warn func(msg string)
}

// Outcome summarizes a completed merge.
type Outcome struct {
	OutputPath  string
	BaseMissing bool
	Stats       Stats
}

// Run loads both documents, merges them and writes the result. The output
// is serialized completely before the file is opened.
func Run(opts Options) (Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Format != document.FormatJSON && opts.Format != document.FormatTOML {
		return Outcome{}, fmt.Errorf("merge: %w %q", document.ErrUnknownFormat, opts.Format)
	}
	out := Outcome{OutputPath: opts.OutputPath}
	if out.OutputPath == "" {
		out.OutputPath = opts.BasePath
	}

	phase := opts.Timer.Begin("load")
	base, missing, err := loadBase(opts.BasePath, opts.Format)
	if err != nil {
		return out, err
	}
	if missing {
		out.BaseMissing = true
		logger.Info("base file not found", zap.String("path", opts.BasePath))
		if opts.Warn != nil {
			opts.Warn(fmt.Sprintf("Base file %s not found, using additions only", opts.BasePath))
		}
	}
	additions, err := loadFile(opts.AdditionsPath, opts.Format)
	if err != nil {
		return out, err
	}
	opts.Timer.End(phase, opts.Format.String())

	phase = opts.Timer.Begin("merge")
	merged, stats := Documents(base, additions)
	out.Stats = stats
	opts.Timer.End(phase, fmt.Sprintf("+%d keys, +%d items", stats.Added, stats.Appended))
	logger.Debug("merged documents",
		zap.String("format", opts.Format.String()),
		zap.Int("added", stats.Added),
		zap.Int("appended", stats.Appended),
		zap.Int("conflicts", stats.Conflicts),
	)

	phase = opts.Timer.Begin("write")
	data, err := document.Encode(opts.Format, merged)
	if err != nil {
		return out, err
	}
	if err := writeFile(out.OutputPath, data); err != nil {
		return out, err
	}
	opts.Timer.End(phase, out.OutputPath)
	return out, nil
}

func loadBase(path string, format document.Format) (*document.Map, bool, error) {
	m, err := loadFile(path, format)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.NewMap(), true, nil
		}
		return nil, false, err
	}
	return m, false, nil
}

func loadFile(path string, format document.Format) (*document.Map, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := document.Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
