package domain_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/filegate/filegate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewValidationReport(t *testing.T) {
	pass := domain.CheckOutcome{Name: domain.HeaderCheckName, Passed: true}

	t.Run("all passed", func(t *testing.T) {
		r := domain.NewValidationReport(domain.RunInfo{}, 3, pass, []domain.CheckOutcome{{Name: "a", Passed: true}})
		assert.True(t, r.Passed)
		assert.Equal(t, domain.StatusPass, r.Status)
		assert.Equal(t, 3, r.Rows)
	})

	t.Run("content failure", func(t *testing.T) {
		r := domain.NewValidationReport(domain.RunInfo{}, 3, pass, []domain.CheckOutcome{{Name: "a", Passed: true}, {Name: "b"}})
		assert.False(t, r.Passed)
		assert.Equal(t, domain.StatusFail, r.Status)
		passed, failed := r.Counts()
		assert.Equal(t, 2, passed)
		assert.Equal(t, 1, failed)
		assert.Equal(t, []domain.CheckOutcome{{Name: "b"}}, r.Failed())
	})

	t.Run("structural failure has empty content", func(t *testing.T) {
		r := domain.NewValidationReport(domain.RunInfo{}, 0, domain.CheckOutcome{Name: domain.HeaderCheckName}, nil)
		assert.False(t, r.Passed)
		assert.NotNil(t, r.Content)
		assert.Empty(t, r.Content)
	})

	t.Run("input slices are copied", func(t *testing.T) {
		content := []domain.CheckOutcome{{Name: "a", Passed: true}}
		r := domain.NewValidationReport(domain.RunInfo{}, 1, pass, content)
		content[0].Passed = false
		assert.True(t, r.Content[0].Passed)
	})
}

func TestValidationReport_WithRunInfo(t *testing.T) {
	base := domain.NewValidationReport(domain.RunInfo{}, 2, domain.CheckOutcome{Passed: true}, nil)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	r := base.WithRunInfo(domain.RunInfo{RunID: "id", DataFile: "d.csv", StartedAt: started, Duration: 1500 * time.Millisecond, Warnings: []string{"w"}})
	assert.Equal(t, "id", r.RunID)
	assert.Equal(t, int64(1500), r.DurationMS)
	assert.Equal(t, []string{"w"}, r.Warnings)
	assert.Equal(t, 2, r.Rows)
	assert.Empty(t, base.RunID, "original untouched")
}

func TestEntryFor(t *testing.T) {
	r := domain.NewValidationReport(domain.RunInfo{RunID: "id", DataFile: "d.csv", SchemaFile: "s.yaml", CommitHash: "abc"},
		5, domain.CheckOutcome{Passed: true}, []domain.CheckOutcome{{Passed: false}})

	e := domain.EntryFor(r, "2024-05-01T12:00:00Z")
	assert.Equal(t, domain.RunEntry{
		RunID: "id", Timestamp: "2024-05-01T12:00:00Z", DataFile: "d.csv", SchemaFile: "s.yaml",
		CommitHash: "abc", Status: domain.StatusFail, Rows: 5, Passed: 1, Failed: 1,
	}, e)
}

func TestOutcomeName(t *testing.T) {
	assert.Equal(t, "not_null(AGE)", domain.OutcomeName(domain.RuleNotNull, "AGE"))
}

func TestConfigurationError_Error(t *testing.T) {
	one := &domain.ConfigurationError{Source: "s.yaml", Issues: []domain.Issue{{Path: "metadata", Message: "section is missing"}}}
	assert.Equal(t, "invalid schema s.yaml: metadata: section is missing", one.Error())

	many := &domain.ConfigurationError{Issues: []domain.Issue{{Message: "a"}, {Path: "p", Message: "b"}}}
	assert.Equal(t, "invalid schema: 2 issues\n  - a\n  - p: b", many.Error())
}

func TestResourceError_Unwrap(t *testing.T) {
	err := fmt.Errorf("loading: %w", &domain.ResourceError{Op: "read data", Path: "x.csv", Err: os.ErrNotExist})
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "read data x.csv")
}

func TestDataset_Column(t *testing.T) {
	ds := &domain.Dataset{
		Header: []string{" age", "Gender"},
		Rows:   []domain.Record{{" age": "1", "Gender": "M"}, {"Gender": "F"}},
	}
	assert.Equal(t, []any{"1", nil}, ds.Column(" age"))

	raw, ok := ds.RawColumn("AGE")
	assert.True(t, ok)
	assert.Equal(t, " age", raw)
	_, ok = ds.RawColumn("SMOKING")
	assert.False(t, ok)
}
