// Package document models configuration documents as trees of ordered
// mappings, lists and scalars, and converts them to and from JSON and TOML.
//
// Values are plain Go values dispatched by type switch:
//
//   - *Map     – mapping with unique string keys, insertion ordered;
//   - []any    – list;
//   - scalars  – string, bool, nil, json.Number (JSON), int64/float64 and
//     date/time values (TOML).
//
// JSON output preserves key order. TOML output is produced by the
// BurntSushi encoder, which orders keys itself.
package document
