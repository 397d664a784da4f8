package document

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// Kind classifies a document value.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "mapping"
	case KindList:
		return "list"
	}
	return "scalar"
}

// KindOf returns the kind of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Map:
		return KindMap
	case []any:
		return KindList
	}
	return KindScalar
}

// Clone deep-copies mappings and lists; scalars are returned as is.
func Clone(v any) any {
	switch v := v.(type) {
	case *Map:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	}
	return v
}

// Equal reports deep equality. Numbers compare by value across int64,
// float64 and json.Number; booleans never equal numbers; mapping equality
// ignores key order; list equality is positional.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.values[k]
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}

	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		return ok && na.equal(nb)
	}
	return reflect.DeepEqual(a, b)
}

type number struct {
	i     int64
	f     float64
	isInt bool
}

func (n number) equal(o number) bool {
	if n.isInt && o.isInt {
		return n.i == o.i
	}
	return n.float() == o.float()
}

func (n number) float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func asNumber(v any) (number, bool) {
	switch v := v.(type) {
	case int64:
		return number{i: v, isInt: true}, true
	case int:
		return number{i: int64(v), isInt: true}, true
	case float64:
		return number{f: v}, true
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return number{i: i, isInt: true}, true
		}
		if f, err := v.Float64(); err == nil {
			return number{f: f}, true
		}
	}
	return number{}, false
}
