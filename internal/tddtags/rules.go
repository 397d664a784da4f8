package tddtags

import (
	"fmt"
	"strings"

	"hookkit/internal/cache"
	"hookkit/internal/diag"
)

// Rules describes which decorators count as TDD markers.
type Rules struct {
	// Namespace must appear in a decorator for it to be a marker (e.g. "pytest.mark").
	Namespace string
	// Tags are the recognized marker names.
	Tags []string
	// Blocking tags make the check fail when present on a test method.
	Blocking []string
}

// DefaultRules returns the pytest rule set.
func DefaultRules() Rules {
	return Rules{
		Namespace: "pytest.mark",
		Tags:      []string{"tdd_green", "tdd_red", "tdd_refactor"},
		Blocking:  []string{"tdd_red", "tdd_refactor"},
	}
}

// Validate reports the first structural problem of the rule set.
func (r Rules) Validate() error {
	if strings.TrimSpace(r.Namespace) == "" {
		return fmt.Errorf("tdd rules: empty marker namespace")
	}
	if len(r.Tags) == 0 {
		return fmt.Errorf("tdd rules: no tags configured")
	}
	for _, tag := range r.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tdd rules: empty tag name")
		}
	}
	for _, b := range r.Blocking {
		if !contains(r.Tags, b) {
			return fmt.Errorf("tdd rules: blocking tag %q is not one of the tags %v", b, r.Tags)
		}
	}
	return nil
}

// IsMarker reports whether a decorator line is a TDD marker: it mentions the
// namespace and at least one recognized tag. Matching is by substring.
func (r Rules) IsMarker(decorator string) bool {
	if !strings.Contains(decorator, r.Namespace) {
		return false
	}
	for _, tag := range r.Tags {
		if strings.Contains(decorator, tag) {
			return true
		}
	}
	return false
}

// IsBlocking reports whether a marker decorator mentions a blocking tag.
func (r Rules) IsBlocking(decorator string) bool {
	for _, tag := range r.Blocking {
		if strings.Contains(decorator, tag) {
			return true
		}
	}
	return false
}

// Fingerprint identifies the rule set in cache keys.
func (r Rules) Fingerprint() cache.Digest {
	parts := make([]string, 0, 3+len(r.Tags)+len(r.Blocking))
	parts = append(parts, r.Namespace, "tags")
	parts = append(parts, r.Tags...)
	parts = append(parts, "blocking")
	parts = append(parts, r.Blocking...)
	return cache.Strings(parts...)
}

// Message returns the per-entry text for a finding code.
func (r Rules) Message(code diag.Code) string {
	switch code {
	case diag.TDDClassMarker:
		return "class-level TDD marker not allowed - use method-level markers only"
	case diag.TDDRedRefactor:
		return "contains red/refactor marker"
	case diag.TDDMissingTag:
		return "test missing @" + r.Namespace + ".[" + strings.Join(r.Tags, "|") + "]"
	}
	return code.Title()
}

// tagPattern renders the tag set compactly for the rule hint, factoring a
// shared "prefix_" out: tdd_[green|red|refactor].
func (r Rules) tagPattern() string {
	prefix := commonPrefix(r.Tags)
	if cut := strings.LastIndexByte(prefix, '_'); cut >= 0 {
		prefix = prefix[:cut+1]
	} else {
		prefix = ""
	}
	rest := make([]string, len(r.Tags))
	for i, tag := range r.Tags {
		rest[i] = strings.TrimPrefix(tag, prefix)
	}
	return prefix + "[" + strings.Join(rest, "|") + "]"
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
