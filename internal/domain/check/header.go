package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/filegate/filegate/internal/domain"
)

// maxSuggestDistance bounds "did you mean" suggestions for unknown columns.
const maxSuggestDistance = 2

// CheckHeader compares a dataset header with the schema's declared columns.
// Three checks run in order (count, membership, order); only the first
// failure is reported.
func CheckHeader(header []string, schema *domain.Schema) domain.CheckOutcome {
	outcome := domain.CheckOutcome{Name: domain.HeaderCheckName}
	normalized := domain.NormalizeHeader(header)

	// 1. Count
	if len(normalized) != schema.ExpectedColumnCount {
		outcome.Reason = domain.ReasonColumnCount
		outcome.Detail = fmt.Sprintf("file has %d columns and must have %d", len(normalized), schema.ExpectedColumnCount)
		outcome.Violations = 1
		return outcome
	}

	// 2. Membership
	if unknown := difference(normalized, schema.ExpectedColumns); len(unknown) > 0 {
		outcome.Reason = domain.ReasonInvalidColumns
		outcome.Violations = len(unknown)
		for _, u := range unknown {
			sample := u
			if s := suggest(u, schema.ExpectedColumns); s != "" {
				sample = fmt.Sprintf("%s (did you mean %s?)", u, s)
			}
			outcome.Samples = append(outcome.Samples, sample)
		}
		outcome.Detail = fmt.Sprintf("invalid column name(s): %s; possible column names: %s",
			strings.Join(outcome.Samples, ", "), strings.Join(schema.ExpectedColumns, ", "))
		return outcome
	}

	// 3. Order
	for i := range normalized {
		if normalized[i] != schema.ExpectedColumns[i] {
			outcome.Reason = domain.ReasonColumnOrder
			outcome.Violations = 1
			outcome.Detail = fmt.Sprintf("wrong column order at position %d (%s); it must be %s",
				i+1, normalized[i], strings.Join(schema.ExpectedColumns, ", "))
			return outcome
		}
	}

	outcome.Passed = true
	return outcome
}

// difference returns the names of got that are not in want, sorted and
// without repeats.
func difference(got, want []string) []string {
	allowed := make(map[string]bool, len(want))
	for _, w := range want {
		allowed[w] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, g := range got {
		if !allowed[g] && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// suggest returns the declared column closest to name, if close enough.
func suggest(name string, declared []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, d := range declared {
		if dist := levenshtein.ComputeDistance(name, d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
