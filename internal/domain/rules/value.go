package rules

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// asString renders a scalar the way it appeared in the source file.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// sampler collects violations, keeping at most limit samples.
type sampler struct {
	limit   int
	count   int
	samples []string
}

func (s *sampler) add(sample string) {
	s.count++
	if len(s.samples) < s.limit {
		s.samples = append(s.samples, sample)
	}
}

// rowLabel numbers data rows from 1, the header not counted.
func rowLabel(idx int) string {
	return "row " + strconv.Itoa(idx+1)
}

func (s *sampler) result(what string) Result {
	if s.count == 0 {
		return Result{Passed: true}
	}
	detail := fmt.Sprintf("%d %s", s.count, what)
	if len(s.samples) > 0 {
		detail += ": " + strings.Join(s.samples, ", ")
	}
	if len(s.samples) > 0 && s.count > len(s.samples) {
		detail += fmt.Sprintf(" (first %d shown)", len(s.samples))
	}
	return Result{
		Violations: s.count,
		Samples:    s.samples,
		Detail:     detail,
	}
}
