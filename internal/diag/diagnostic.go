package diag

import "fmt"

// Diagnostic is one finding. Every diagnostic fails the hook run.
type Diagnostic struct {
	Code    Code
	Message string
	Path    string
	Line    uint32
}

// Location renders "path:line", or just the path for file-level findings.
func (d Diagnostic) Location() string {
	if d.Line == 0 {
		return d.Path
	}
	return fmt.Sprintf("%s:%d", d.Path, d.Line)
}

// String renders the diagnostic as a single "location: message" line.
func (d Diagnostic) String() string {
	return d.Location() + ": " + d.Message
}
