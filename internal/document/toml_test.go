package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTOML = `
name = "demo"
version = "0.1.0"
authors = ["ann", "bob"]

[tool.pytest]
markers = ["tdd_green"]
addopts = "-q"

[[tool.checks]]
id = "lint"

[[tool.checks]]
id = "type"
strict = true
`

func TestDecodeTOMLSortsKeys(t *testing.T) {
	m, err := DecodeTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if diff := cmp.Diff([]string{"authors", "name", "tool", "version"}, m.Keys()); diff != "" {
		t.Fatalf("top-level keys (-want +got):\n%s", diff)
	}
	tool, _ := m.Get("tool")
	if diff := cmp.Diff([]string{"checks", "pytest"}, tool.(*Map).Keys()); diff != "" {
		t.Fatalf("tool keys (-want +got):\n%s", diff)
	}
	pytest, _ := tool.(*Map).Get("pytest")
	if diff := cmp.Diff([]string{"addopts", "markers"}, pytest.(*Map).Keys()); diff != "" {
		t.Fatalf("pytest keys (-want +got):\n%s", diff)
	}

	checks, _ := tool.(*Map).Get("checks")
	list, ok := checks.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected array of two tables, got %#v", checks)
	}
	second, ok := list[1].(*Map)
	if !ok {
		t.Fatalf("expected *Map element, got %T", list[1])
	}
	if diff := cmp.Diff([]string{"id", "strict"}, second.Keys()); diff != "" {
		t.Fatalf("array table keys (-want +got):\n%s", diff)
	}
	if v, _ := second.Get("strict"); v != true {
		t.Fatalf("expected strict = true, got %v", v)
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	m, err := DecodeTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	out, err := EncodeTOML(m)
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	back, err := DecodeTOML(out)
	if err != nil {
		t.Fatalf("re-decode: %v\n%s", err, out)
	}
	if !Equal(m, back) {
		t.Fatalf("round trip changed the document:\n%s", out)
	}
	if !strings.Contains(string(out), "[[tool.checks]]") {
		t.Fatalf("expected array of tables in output:\n%s", out)
	}
}

func TestDecodeTOMLEmptyAndInvalid(t *testing.T) {
	m, err := DecodeTOML(nil)
	if err != nil {
		t.Fatalf("DecodeTOML(empty): %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty mapping, got %d keys", m.Len())
	}
	if _, err := DecodeTOML([]byte("name = \n")); err == nil {
		t.Fatal("expected parse error")
	}
}
