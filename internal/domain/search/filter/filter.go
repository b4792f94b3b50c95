package filter

import (
	"fmt"
	"regexp"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
// An empty should group places no constraint; a non-empty one needs at least one hit.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Keys returns every field name referenced by the expression, without duplicates.
func (e Expression) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, group := range [][]Condition{e.must, e.should, e.mustNot} {
		for _, c := range group {
			if _, ok := seen[c.key]; ok {
				continue
			}
			seen[c.key] = struct{}{}
			keys = append(keys, c.key)
		}
	}
	return keys
}

// Matches evaluates the expression against a flat field map.
// Missing fields compare as the empty string.
func (e Expression) Matches(fields map[string]string) bool {
	for _, c := range e.must {
		if !c.Matches(fields[c.key]) {
			return false
		}
	}
	for _, c := range e.mustNot {
		if c.Matches(fields[c.key]) {
			return false
		}
	}
	if len(e.should) == 0 {
		return true
	}
	for _, c := range e.should {
		if c.Matches(fields[c.key]) {
			return true
		}
	}
	return false
}

// Condition is a single filter clause: an exact match or a case-insensitive pattern.
type Condition struct {
	key     string
	match   string
	pattern string
	re      *regexp.Regexp
}

// NewMatch creates an exact, case-sensitive match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// NewPattern creates a case-insensitive, unanchored regular expression condition.
// The pattern must stay within the syntax shared by RE2 and POSIX ARE,
// since SQL drivers evaluate it server-side.
func NewPattern(key, pattern string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if pattern == "" {
		return Condition{}, fmt.Errorf("pattern is required for key %q", key)
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Condition{}, fmt.Errorf("invalid pattern for key %q: %w", key, err)
	}
	return Condition{key: key, pattern: pattern, re: re}, nil
}

// NewContains creates a case-insensitive substring condition.
// Regex metacharacters in s are matched literally.
func NewContains(key, s string) (Condition, error) {
	return NewPattern(key, Literal(s))
}

// Literal escapes every regex metacharacter in s.
func Literal(s string) string { return regexp.QuoteMeta(s) }

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Pattern returns the raw pattern without the case-insensitivity flag.
func (c Condition) Pattern() string { return c.pattern }

// IsMatch reports whether this is an exact match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsPattern reports whether this is a pattern condition.
func (c Condition) IsPattern() bool { return c.re != nil }

// Matches reports whether value satisfies the condition.
func (c Condition) Matches(value string) bool {
	if c.re != nil {
		return c.re.MatchString(value)
	}
	return value == c.match
}
