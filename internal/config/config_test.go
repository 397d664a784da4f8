package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hookkit/internal/tddtags"
)

func TestDefaultMatchesBuiltinRules(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if diff := cmp.Diff(tddtags.DefaultRules(), cfg.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if cfg.Merge.Type != "auto" || cfg.Color != "auto" || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "tdd:\n  tags: [tdd_green, tdd_wip]\n  blocking: [tdd_wip]\n  cache: true\nmerge:\n  type: toml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.TDD.Tags = []string{"tdd_green", "tdd_wip"}
	want.TDD.Blocking = []string{"tdd_wip"}
	want.TDD.Cache = true
	want.Merge.Type = "toml"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"color":    "color: sometimes\n",
		"level":    "log_level: loud\n",
		"type":     "merge:\n  type: yaml\n",
		"blocking": "tdd:\n  blocking: [tdd_unknown]\n",
		"no tags":  "tdd:\n  tags: []\n  blocking: []\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("tdd: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOOKKIT_LOG_LEVEL", "DEBUG")
	t.Setenv("HOOKKIT_COLOR", "off")
	cfg, _, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Color != "off" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := Default().Save(filepath.Join(root, FileName)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, FileName) {
		t.Fatalf("unexpected path %q", path)
	}

	cfg, found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if found != path {
		t.Fatalf("Discover found %q, want %q", found, path)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Default().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Default().Save(path); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
}
