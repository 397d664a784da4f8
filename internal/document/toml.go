package document

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// DecodeTOML parses a TOML document. Mappings come back with sorted keys;
// on output the encoder picks the order.
func DecodeTOML(data []byte) (*Map, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	return FromPlain(raw), nil
}

// EncodeTOML serializes m with the BurntSushi encoder.
func EncodeTOML(m *Map) ([]byte, error) {
	if m == nil {
		m = NewMap()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m.ToPlain()); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return buf.Bytes(), nil
}
