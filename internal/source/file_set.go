package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileSet holds the files read during one run.
type FileSet struct {
	files []*File
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add registers content under path as a new file version.
func (fileSet *FileSet) Add(path string, content []byte) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f := &File{
		ID:      FileID(n),
		Path:    NormalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
	}
	fileSet.files = append(fileSet.files, f)
	return f.ID
}

// Load reads path from disk. Content must be valid UTF-8; \r\n and lone \r
// line endings become \n. A UTF-8 BOM is kept as part of the first line.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(content) {
		return 0, ErrInvalidUTF8
	}
	return fileSet.Add(path, normalizeNewlines(content)), nil
}

// Get returns the file with the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return fileSet.files[id]
}

// Lines returns the file's lines without separators, split the way Python's
// str.splitlines splits. The slice is shared; callers must not modify it.
func (f *File) Lines() []string {
	if f.lines == nil {
		f.lines = splitLines(string(f.Content))
	}
	return f.lines
}
