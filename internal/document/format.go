package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects a document syntax.
type Format uint8

const (
	FormatAuto Format = iota
	FormatJSON
	FormatTOML
)

var (
	// ErrUnknownFormat is returned for format names and extensions that are not supported.
	ErrUnknownFormat = errors.New("unknown document format")
	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("top-level document is not a mapping")
)

// UnknownExtensionError reports that auto-detection could not map a file
// extension onto a format.
type UnknownExtensionError struct {
	Ext string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("cannot auto-detect type from extension '%s'", e.Ext)
}

func (e *UnknownExtensionError) Is(target error) bool {
	return target == ErrUnknownFormat
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	}
	return "auto"
}

// ParseFormat accepts "json", "toml" and "auto".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "auto", "":
		return FormatAuto, nil
	}
	return FormatAuto, fmt.Errorf("%w %q (expected json, toml or auto)", ErrUnknownFormat, s)
}

// DetectFormat maps a path's extension onto a format, case-insensitively.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return FormatAuto, &UnknownExtensionError{Ext: ext}
}

// Resolve returns requested unless it is FormatAuto, in which case the
// format is detected from path.
func Resolve(requested Format, path string) (Format, error) {
	if requested != FormatAuto {
		return requested, nil
	}
	return DetectFormat(path)
}

// Decode parses data in the given format. The top level must be a mapping.
func Decode(f Format, data []byte) (*Map, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatTOML:
		return DecodeTOML(data)
	}
	return nil, fmt.Errorf("decode: %w %q", ErrUnknownFormat, f)
}

// Encode serializes m in the given format.
func Encode(f Format, m *Map) ([]byte, error) {
	switch f {
	case FormatJSON:
		return EncodeJSON(m)
	case FormatTOML:
		return EncodeTOML(m)
	}
	return nil, fmt.Errorf("encode: %w %q", ErrUnknownFormat, f)
}
