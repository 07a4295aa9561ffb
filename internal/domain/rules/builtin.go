package rules

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/filegate/filegate/internal/domain"
)

// NotNull passes iff no value in the column is null.
type NotNull struct{}

func (NotNull) Description() string { return "column must not contain null values" }

func (NotNull) Check(values []any, _ domain.Params, limit int) Result {
	s := sampler{limit: limit}
	for i, v := range values {
		if v == nil {
			s.add(rowLabel(i))
		}
	}
	return s.result("null value(s)")
}

// DateFormat requires every non-null value to fully match a date pattern.
// The default pattern is domain.DefaultDatePattern; a target may override it
// with a "pattern" parameter.
type DateFormat struct{}

func (DateFormat) Description() string {
	return "non-null values must match YYYY-MM-DD (or the target's pattern)"
}

func (DateFormat) Check(values []any, params domain.Params, limit int) Result {
	pattern := domain.DefaultDatePattern
	if p, ok := params.String("pattern"); ok && p != "" {
		pattern = p
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return Result{Violations: 1, Detail: fmt.Sprintf("pattern %q does not compile: %v", pattern, err)}
	}

	s := sampler{limit: limit}
	for i, v := range values {
		if v == nil {
			continue
		}
		str := asString(v)
		if !re.MatchString(str) {
			s.add(fmt.Sprintf("%s %q", rowLabel(i), str))
		}
	}
	return s.result("value(s) not matching " + pattern)
}

// MaxStringLength requires every non-null value to be at most "length"
// characters long.
type MaxStringLength struct{}

func (MaxStringLength) Description() string {
	return "non-null values must be at most length characters"
}

func (MaxStringLength) Check(values []any, params domain.Params, limit int) Result {
	bound, ok := params.Int("length")
	if !ok || bound < 0 {
		return Result{Violations: 1, Detail: fmt.Sprintf("length must be a non-negative integer, got %v", params["length"])}
	}

	s := sampler{limit: limit}
	for i, v := range values {
		if v == nil {
			continue
		}
		str := asString(v)
		if n := utf8.RuneCountInString(str); n > bound {
			s.add(fmt.Sprintf("%s %q (%d)", rowLabel(i), str, n))
		}
	}
	return s.result(fmt.Sprintf("value(s) longer than %d", bound))
}

var patterns sync.Map // pattern string -> *regexp.Regexp

// compilePattern compiles p so that it must match the whole value, whether
// or not p carries its own anchors.
func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`^(?:` + p + `)$`)
	if err != nil {
		return nil, err
	}
	patterns.Store(p, re)
	return re, nil
}
