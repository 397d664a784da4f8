// Package diag defines the finding model shared by the hookkit checks.
//
// # Purpose
//
//   - Provide small, deterministic records for findings produced while
//     scanning files (policy violations, unreadable inputs).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; the checks that produce diagnostics live in their own
// packages (internal/tddtags).
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Code: compact numeric identifier (see codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Path / Line: location of the finding; Line is 1-based, 0 means the
//     finding concerns the whole file.
//
// Producers report through a Reporter; BagReporter collects into a Bag in
// emission order, which is also the order the CLI prints them in.
package diag
