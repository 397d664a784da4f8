package tddtags

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hookkit/internal/cache"
	"hookkit/internal/diag"
	"hookkit/internal/observ"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newChecker(t *testing.T, opts Options) *Checker {
	t.Helper()
	if opts.Rules.Namespace == "" {
		opts.Rules = DefaultRules()
	}
	c, err := NewChecker(opts)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return c
}

func itemStrings(items []diag.Diagnostic) []string {
	out := make([]string, len(items))
	for i, d := range items {
		out[i] = d.String()
	}
	return out
}

func TestCheckMissingTagOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test_foo.py", "import pytest\n\ndef test_foo():\n    assert True\n")

	res := newChecker(t, Options{}).Check([]string{path})
	if res.Report.Category != CategoryMissing {
		t.Fatalf("expected missing category, got %s", res.Report.Category)
	}
	if res.Report.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", res.Report.ExitCode())
	}
	want := []string{filepath.ToSlash(path) + ":3: test missing @pytest.mark.[tdd_green|tdd_red|tdd_refactor]"}
	if diff := cmp.Diff(want, itemStrings(res.Report.Items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if n := len(res.Bag.WithCodes(diag.TDDClassMarker, diag.TDDRedRefactor)); n != 0 {
		t.Fatalf("expected no class-level or red/refactor findings, got %d", n)
	}
	wantHeader := []string{"TDD enforcement: all tests must be tagged with one of: tdd_green, tdd_red, tdd_refactor."}
	if diff := cmp.Diff(wantHeader, res.Report.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckLineBreakVariants(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		line    string
	}{
		{"lone cr", "test_cr.py", "import x\r\rdef test_a():\r    pass\r", "3"},
		{"crlf", "test_crlf.py", "import x\r\n\r\ndef test_a():\r\n    pass\r\n", "3"},
		{"form feed", "test_ff.py", "import x\f\ndef test_a():\n    pass\n", "3"},
		{"unicode line separator", "test_ls.py", "import x\u2028def test_a():\n    pass\n", "2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tc.file, tc.content)
			res := newChecker(t, Options{}).Check([]string{path})
			if res.Report.ExitCode() != 1 {
				t.Fatalf("expected exit code 1, got %d", res.Report.ExitCode())
			}
			want := []string{filepath.ToSlash(path) + ":" + tc.line + ": test missing @pytest.mark.[tdd_green|tdd_red|tdd_refactor]"}
			if diff := cmp.Diff(want, itemStrings(res.Report.Items)); diff != "" {
				t.Fatalf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckBOMFirstLineIsNotADefinition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test_bom.py", "\ufeffdef test_a():\n    pass\n\ndef test_b():\n    pass\n")
	res := newChecker(t, Options{}).Check([]string{path})
	want := []string{filepath.ToSlash(path) + ":4: test missing @pytest.mark.[tdd_green|tdd_red|tdd_refactor]"}
	if diff := cmp.Diff(want, itemStrings(res.Report.Items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckClassLevelOverridesBatch(t *testing.T) {
	dir := t.TempDir()
	missing := writeFile(t, dir, "test_a.py", "def test_untagged():\n    pass\n")
	red := writeFile(t, dir, "test_b.py", "@pytest.mark.tdd_red\ndef test_wip():\n    pass\n")
	class := writeFile(t, dir, "pkg/foo_test.py",
		"import pytest\n\n@pytest.mark.tdd_green\nclass FooTest:\n    @pytest.mark.tdd_green\n    def test_ok(self):\n        pass\n")

	res := newChecker(t, Options{}).Check([]string{missing, red, class})
	if res.Report.Category != CategoryClassLevel {
		t.Fatalf("expected class-level category, got %s", res.Report.Category)
	}
	want := []string{filepath.ToSlash(class) + ":4: class-level TDD marker not allowed - use method-level markers only"}
	if diff := cmp.Diff(want, itemStrings(res.Report.Items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	wantHeader := []string{
		"TDD enforcement: class-level TDD markers are NOT allowed.",
		"RULE: Each test method must have its own @pytest.mark.tdd_[green|red|refactor] decorator.",
	}
	if diff := cmp.Diff(wantHeader, res.Report.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	// остальные категории по-прежнему собраны в Bag
	if res.Bag.Len() != 3 {
		t.Fatalf("expected 3 findings in bag, got %d", res.Bag.Len())
	}
}

func TestCheckRedRefactorBeatsMissing(t *testing.T) {
	dir := t.TempDir()
	missing := writeFile(t, dir, "test_a.py", "def test_untagged():\n    pass\n")
	red := writeFile(t, dir, "test_b.py", "@pytest.mark.tdd_refactor\ndef test_wip():\n    pass\n")

	res := newChecker(t, Options{}).Check([]string{missing, red})
	if res.Report.Category != CategoryRedRefactor {
		t.Fatalf("expected red-refactor category, got %s", res.Report.Category)
	}
	want := []string{filepath.ToSlash(red) + ":2: contains red/refactor marker"}
	if diff := cmp.Diff(want, itemStrings(res.Report.Items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckAllGreenPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tests.py", `import pytest


class TestSuite:
    @pytest.mark.tdd_green
    def test_one(self):
        pass

    @pytest.mark.parametrize("x", [1, 2])

    @pytest.mark.tdd_green
    def test_two(self, x):
        pass
`)
	res := newChecker(t, Options{}).Check([]string{path})
	if res.Report.Failed() || res.Report.ExitCode() != 0 {
		t.Fatalf("expected pass, got %+v", res.Report)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("expected no findings, got %d", res.Bag.Len())
	}
}

func TestCheckNothingToCheck(t *testing.T) {
	res := newChecker(t, Options{}).Check([]string{"README.md", "src/app.py", "test_data.json"})
	if res.Report.Failed() {
		t.Fatalf("expected pass for non-test inputs, got %+v", res.Report)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no selected files, got %v", res.Files)
	}
}

func TestCheckUnreadableFileJoinsMissingCategory(t *testing.T) {
	dir := t.TempDir()
	absent := filepath.Join(dir, "test_gone.py")
	res := newChecker(t, Options{}).Check([]string{absent})
	if res.Report.Category != CategoryMissing {
		t.Fatalf("expected missing category, got %s", res.Report.Category)
	}
	if len(res.Report.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(res.Report.Items))
	}
	got := res.Report.Items[0]
	if got.Code != diag.IOUnreadable || got.Line != 0 {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
	if !strings.HasPrefix(got.String(), filepath.ToSlash(absent)+": unreadable: ") {
		t.Fatalf("unexpected message %q", got.String())
	}
}

func TestCheckUnreadableDoesNotHideRedRefactor(t *testing.T) {
	dir := t.TempDir()
	latin1 := writeFile(t, dir, "test_latin1.py", "# caf\xe9\ndef test_a():\n    pass\n")
	red := writeFile(t, dir, "test_red.py", "@pytest.mark.tdd_red\ndef test_b():\n    pass\n")

	res := newChecker(t, Options{}).Check([]string{latin1, red})
	if res.Report.Category != CategoryRedRefactor {
		t.Fatalf("expected red-refactor category, got %s", res.Report.Category)
	}
	if n := len(res.Bag.WithCodes(diag.IOUnreadable)); n != 1 {
		t.Fatalf("expected one unreadable finding, got %d", n)
	}
}

func TestCheckCustomRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test_custom.py", "@mark.wip\ndef test_a():\n    pass\n\ndef test_b():\n    pass\n")
	rules := Rules{Namespace: "mark", Tags: []string{"done", "wip"}, Blocking: []string{"wip"}}

	res := newChecker(t, Options{Rules: rules}).Check([]string{path})
	if res.Report.Category != CategoryRedRefactor {
		t.Fatalf("expected red-refactor category, got %s", res.Report.Category)
	}
	missing := res.Bag.WithCodes(diag.TDDMissingTag)
	if len(missing) != 1 || missing[0].Message != "test missing @mark.[done|wip]" {
		t.Fatalf("unexpected missing findings %+v", missing)
	}
}

func TestCheckUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test_cached.py", "def test_a():\n    pass\n")
	c, err := cache.Open(filepath.Join(dir, "cache"), "scan")
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}

	first := newChecker(t, Options{Cache: c}).Check([]string{path})
	second := newChecker(t, Options{Cache: c}).Check([]string{path})
	if diff := cmp.Diff(itemStrings(first.Report.Items), itemStrings(second.Report.Items)); diff != "" {
		t.Fatalf("cached run differs (-first +second):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cache", "scan"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(entries))
	}

	// другое содержимое, другой ключ
	writeFile(t, dir, "test_cached.py", "@pytest.mark.tdd_green\ndef test_a():\n    pass\n")
	third := newChecker(t, Options{Cache: c}).Check([]string{path})
	if third.Report.Failed() {
		t.Fatalf("expected pass after tagging, got %+v", third.Report)
	}
}

func TestCheckRecordsTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test_t.py", "@pytest.mark.tdd_green\ndef test_a():\n    pass\n")
	timer := observ.NewTimer()
	newChecker(t, Options{Timer: timer}).Check([]string{path})

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"select", "scan"}, names); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCheckerRejectsInvalidRules(t *testing.T) {
	if _, err := NewChecker(Options{Rules: Rules{Namespace: "pytest.mark"}}); err == nil {
		t.Fatal("expected error for rules without tags")
	}
}
