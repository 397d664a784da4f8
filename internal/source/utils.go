package source

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by Load for content that is not UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 content")

// normalizeNewlines переводит \r\n и одиночный \r в \n.
func normalizeNewlines(content []byte) []byte {
	if !bytes.ContainsRune(content, '\r') {
		return content
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte{'\n'})
	return bytes.ReplaceAll(content, []byte{'\r'}, []byte{'\n'})
}

// isLineBreak matches the separators of Python's str.splitlines.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// splitLines режет текст на строки без разделителей. \r\n считается одним
// разделителем; завершающий разделитель не открывает новую строку.
func splitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// NormalizePath returns the display form of a path: forward slashes, with
// empty and "." segments dropped. ".." segments are kept as written.
func NormalizePath(p string) string {
	p = filepath.ToSlash(p)
	rooted := strings.HasPrefix(p, "/")
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		kept = append(kept, part)
	}
	out := strings.Join(kept, "/")
	switch {
	case rooted:
		return "/" + out
	case out == "":
		return "."
	}
	return out
}
