package source

// FileID identifies one loaded version of a file within a FileSet.
type FileID uint32

// File is a loaded text file. After FileSet.Load its content uses LF line
// endings only.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte

	lines []string
}
