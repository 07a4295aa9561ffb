package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/rules"
)

func TestNotNull(t *testing.T) {
	t.Run("no nulls passes", func(t *testing.T) {
		res := rules.NotNull{}.Check([]any{"1", "2"}, nil, 10)
		assert.True(t, res.Passed)
		assert.Zero(t, res.Violations)
	})

	t.Run("null fails with row number", func(t *testing.T) {
		res := rules.NotNull{}.Check([]any{"1", nil, "3"}, nil, 10)
		assert.False(t, res.Passed)
		assert.Equal(t, 1, res.Violations)
		assert.Equal(t, []string{"row 2"}, res.Samples)
		assert.Equal(t, "1 null value(s): row 2", res.Detail)
	})

	t.Run("samples are bounded", func(t *testing.T) {
		res := rules.NotNull{}.Check([]any{nil, nil, nil}, nil, 2)
		assert.Equal(t, 3, res.Violations)
		assert.Len(t, res.Samples, 2)
		assert.Contains(t, res.Detail, "(first 2 shown)")
	})

	t.Run("empty column passes", func(t *testing.T) {
		assert.True(t, rules.NotNull{}.Check(nil, nil, 10).Passed)
	})
}

func TestDateFormat(t *testing.T) {
	tests := []struct {
		value  any
		passed bool
	}{
		{"2021-06-15", true},
		{"2021-02-30", true},
		{nil, true},
		{"2021-13-01", false},
		{"21-06-15", false},
		{"2021/06/15", false},
		{"", false},
		{"2021-06-15 ", false},
		{"x2021-06-15", false},
		{20210615, false},
	}
	for _, tt := range tests {
		res := rules.DateFormat{}.Check([]any{tt.value}, nil, 10)
		assert.Equal(t, tt.passed, res.Passed, "value %#v", tt.value)
	}
}

func TestDateFormat_CustomPattern(t *testing.T) {
	params := domain.Params{"pattern": `\d{2}\.\d{2}\.\d{4}`}

	res := rules.DateFormat{}.Check([]any{"15.06.2021", "2021-06-15"}, params, 10)
	assert.False(t, res.Passed)
	assert.Equal(t, 1, res.Violations)
	assert.Equal(t, []string{`row 2 "2021-06-15"`}, res.Samples)
}

func TestDateFormat_BadPatternFails(t *testing.T) {
	res := rules.DateFormat{}.Check([]any{"x"}, domain.Params{"pattern": "("}, 10)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Detail, "does not compile")
}

func TestMaxStringLength(t *testing.T) {
	params := domain.Params{"length": 3}

	assert.True(t, rules.MaxStringLength{}.Check([]any{"abc", nil, ""}, params, 10).Passed)

	res := rules.MaxStringLength{}.Check([]any{"abc", "abcd"}, params, 10)
	assert.False(t, res.Passed)
	assert.Equal(t, []string{`row 2 "abcd" (4)`}, res.Samples)
}

func TestMaxStringLength_CountsCharacters(t *testing.T) {
	res := rules.MaxStringLength{}.Check([]any{"żółw"}, domain.Params{"length": 4}, 10)
	assert.True(t, res.Passed)
}

func TestMaxStringLength_FormatsNonStrings(t *testing.T) {
	res := rules.MaxStringLength{}.Check([]any{12345, 1.5}, domain.Params{"length": 3}, 10)
	assert.Equal(t, 1, res.Violations)
}

func TestMaxStringLength_MissingLength(t *testing.T) {
	res := rules.MaxStringLength{}.Check([]any{"a"}, nil, 10)
	assert.False(t, res.Passed)
}

func TestRegistry_Default(t *testing.T) {
	r := rules.Default()
	kinds := r.Kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, domain.RuleDateFormat, kinds[0].Kind)
	assert.Equal(t, domain.RuleNotNull, kinds[1].Kind)
	assert.Equal(t, domain.RuleMaxStringLength, kinds[2].Kind)
	for _, k := range kinds {
		assert.NotEmpty(t, k.Description)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := rules.NewRegistry()
	upper := rules.RuleFunc{
		Desc: "values must be upper case",
		Fn: func(values []any, _ domain.Params, _ int) rules.Result {
			return rules.Result{Passed: true}
		},
	}

	require.NoError(t, r.Register("upper", upper))
	assert.Error(t, r.Register("upper", upper), "duplicate")
	assert.Error(t, r.Register("", upper))

	rule, ok := r.Lookup("upper")
	require.True(t, ok)
	assert.True(t, rule.Check(nil, nil, 1).Passed)
	assert.Equal(t, "values must be upper case", rule.Description())
}

func TestRegistry_Supports(t *testing.T) {
	schema := &domain.Schema{
		Source: "s.yaml",
		Rules: []domain.RuleSpec{
			{Kind: domain.RuleNotNull},
			{Kind: "unique", Targets: []domain.RuleTarget{{Column: "A"}}},
		},
	}

	err := rules.Default().Supports(schema)
	var ce *domain.ConfigurationError
	require.ErrorAs(t, err, &ce)
	require.Len(t, ce.Issues, 1)
	assert.Equal(t, "metadata.validations.unique", ce.Issues[0].Path)
	assert.Equal(t, "s.yaml", ce.Source)

	assert.NoError(t, rules.Default().Supports(&domain.Schema{Rules: []domain.RuleSpec{{Kind: domain.RuleNotNull}}}))
}
