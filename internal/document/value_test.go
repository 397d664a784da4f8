package document

import (
	"encoding/json"
	"testing"
)

func TestEqual(t *testing.T) {
	m1 := NewMap()
	m1.Set("a", int64(1))
	m1.Set("b", []any{"x"})
	m2 := NewMap()
	m2.Set("b", []any{"x"})
	m2.Set("a", 1.0)

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"int vs float", int64(1), 1.0, true},
		{"json number vs int", json.Number("2"), int64(2), true},
		{"json float text", json.Number("2.50"), json.Number("2.5"), true},
		{"different numbers", int64(1), int64(2), false},
		{"bool vs number", true, int64(1), false},
		{"false vs zero", false, int64(0), false},
		{"float vs bool", 1.0, true, false},
		{"json number vs bool", json.Number("1"), true, false},
		{"strings", "a", "a", true},
		{"string vs number", "1", int64(1), false},
		{"nil", nil, nil, true},
		{"nil vs false", nil, false, false},
		{"maps ignore order", m1, m2, true},
		{"lists are ordered", []any{"a", "b"}, []any{"b", "a"}, false},
		{"list vs map", []any{}, NewMap(), false},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Equal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := NewMap()
	inner.Set("k", []any{"v"})
	m := NewMap()
	m.Set("inner", inner)

	c := m.Clone()
	ci, _ := c.Get("inner")
	ci.(*Map).Set("new", "x")
	if inner.Has("new") {
		t.Fatal("clone shares nested mapping with original")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(NewMap()) != KindMap || KindOf([]any{}) != KindList || KindOf("s") != KindScalar {
		t.Fatal("unexpected kinds")
	}
	if KindMap.String() != "mapping" {
		t.Fatalf("unexpected KindMap string %q", KindMap.String())
	}
}

func TestFromPlainSortsKeys(t *testing.T) {
	m := FromPlain(map[string]any{"b": 1, "a": map[string]any{"d": 1, "c": 2}})
	if got := m.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected keys %v", got)
	}
	plain := m.ToPlain()
	if _, ok := plain["a"].(map[string]any); !ok {
		t.Fatalf("ToPlain did not convert nested mapping: %#v", plain["a"])
	}
}
