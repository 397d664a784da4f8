package tddtags

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"hookkit/internal/diag"
)

// DefKind distinguishes the two definition markers.
type DefKind uint8

const (
	DefMethod DefKind = iota
	DefClass
)

func (k DefKind) String() string {
	if k == DefClass {
		return "class"
	}
	return "method"
}

// Definition is a test definition found at a 0-based line index.
type Definition struct {
	Index int
	Kind  DefKind
}

// Finding is a file-relative policy finding; Line is 1-based.
type Finding struct {
	Code diag.Code
	Line uint32
}

var (
	methodPattern = regexp.MustCompile(`^\s*def\s+test_`)
	classPattern  = regexp.MustCompile(`^\s*class\s+[\p{L}\p{N}_]*Test`)
)

// IsTestFile reports whether path names a Python test module:
// test_*.py, *_test.py or tests.py.
func IsTestFile(path string) bool {
	if !strings.HasSuffix(path, ".py") {
		return false
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py") || name == "tests.py"
}

// SelectTestFiles keeps the test files of paths, in order.
func SelectTestFiles(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsTestFile(p) {
			out = append(out, p)
		}
	}
	return out
}

// FindDefinitions returns test method and test class markers in line order.
func FindDefinitions(lines []string) []Definition {
	var defs []Definition
	for i, line := range lines {
		switch {
		case methodPattern.MatchString(line):
			defs = append(defs, Definition{Index: i, Kind: DefMethod})
		case classPattern.MatchString(line):
			defs = append(defs, Definition{Index: i, Kind: DefClass})
		}
	}
	return defs
}

// DecoratorsAbove collects the decorator lines directly above lines[index],
// skipping blank lines and stopping at the first other line. The result is
// in top-to-bottom order with trailing whitespace removed.
func DecoratorsAbove(lines []string, index int) []string {
	var decs []string
	for i := index - 1; i >= 0; i-- {
		s := strings.TrimRightFunc(lines[i], unicode.IsSpace)
		if strings.TrimSpace(s) == "" {
			continue
		}
		if !strings.HasPrefix(strings.TrimLeftFunc(s, unicode.IsSpace), "@") {
			break
		}
		decs = append(decs, s)
	}
	// разворачиваем: собирали снизу вверх
	for l, r := 0, len(decs)-1; l < r; l, r = l+1, r-1 {
		decs[l], decs[r] = decs[r], decs[l]
	}
	return decs
}

// Scan applies the rules to the lines of one file.
func Scan(lines []string, rules Rules) []Finding {
	var findings []Finding
	for _, def := range FindDefinitions(lines) {
		line, err := safecast.Conv[uint32](def.Index + 1)
		if err != nil {
			panic(fmt.Errorf("line number overflow: %w", err))
		}
		var markers []string
		for _, d := range DecoratorsAbove(lines, def.Index) {
			if rules.IsMarker(d) {
				markers = append(markers, d)
			}
		}

		if def.Kind == DefClass {
			if len(markers) > 0 {
				findings = append(findings, Finding{Code: diag.TDDClassMarker, Line: line})
			}
			continue
		}

		if len(markers) == 0 {
			findings = append(findings, Finding{Code: diag.TDDMissingTag, Line: line})
			continue
		}
		for _, m := range markers {
			if rules.IsBlocking(m) {
				findings = append(findings, Finding{Code: diag.TDDRedRefactor, Line: line})
				break
			}
		}
	}
	return findings
}
