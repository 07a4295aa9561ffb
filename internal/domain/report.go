package domain

import (
	"fmt"
	"time"
)

// Structural failure reasons, in the order they are checked.
const (
	ReasonColumnCount    = "column_count"
	ReasonInvalidColumns = "invalid_columns"
	ReasonColumnOrder    = "column_order"
)

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// HeaderCheckName is the CheckOutcome name of the structural check.
const HeaderCheckName = "header"

// CheckOutcome is the pass/fail result of one check plus its diagnostics.
type CheckOutcome struct {
	Name       string   `json:"name"`
	Kind       RuleKind `json:"kind,omitempty"`
	Column     string   `json:"column,omitempty"`
	Passed     bool     `json:"passed"`
	Reason     string   `json:"reason,omitempty"`
	Detail     string   `json:"detail,omitempty"`
	Violations int      `json:"violations,omitempty"`
	Samples    []string `json:"samples,omitempty"`
}

// OutcomeName returns the display name of a rule x column check.
func OutcomeName(kind RuleKind, column string) string {
	return fmt.Sprintf("%s(%s)", kind, column)
}

// RunInfo is the provenance attached to a report by the application layer.
type RunInfo struct {
	RunID             string
	DataFile          string
	SchemaFile        string
	SchemaFingerprint string
	CommitHash        string
	StartedAt         time.Time
	Duration          time.Duration
	Warnings          []string
}

// ValidationReport is the result of one validation run. It is built once by
// NewValidationReport and not modified afterwards.
type ValidationReport struct {
	RunID             string         `json:"run_id,omitempty"`
	DataFile          string         `json:"data_file,omitempty"`
	SchemaFile        string         `json:"schema_file,omitempty"`
	SchemaFingerprint string         `json:"schema_fingerprint,omitempty"`
	CommitHash        string         `json:"commit_hash,omitempty"`
	StartedAt         time.Time      `json:"started_at"`
	DurationMS        int64          `json:"duration_ms"`
	Rows              int            `json:"rows"`
	Status            string         `json:"status"`
	Passed            bool           `json:"overall_passed"`
	Structural        CheckOutcome   `json:"structural"`
	Content           []CheckOutcome `json:"content"`
	Warnings          []string       `json:"warnings,omitempty"`
}

// NewValidationReport aggregates a structural outcome and the content
// outcomes of one run. Content must be empty when the structural check failed.
func NewValidationReport(info RunInfo, rows int, structural CheckOutcome, content []CheckOutcome) *ValidationReport {
	passed := structural.Passed
	for _, c := range content {
		if !c.Passed {
			passed = false
			break
		}
	}
	status := StatusFail
	if passed {
		status = StatusPass
	}
	return &ValidationReport{
		RunID:             info.RunID,
		DataFile:          info.DataFile,
		SchemaFile:        info.SchemaFile,
		SchemaFingerprint: info.SchemaFingerprint,
		CommitHash:        info.CommitHash,
		StartedAt:         info.StartedAt,
		DurationMS:        info.Duration.Milliseconds(),
		Rows:              rows,
		Status:            status,
		Passed:            passed,
		Structural:        structural,
		Content:           append([]CheckOutcome{}, content...),
		Warnings:          append([]string(nil), info.Warnings...),
	}
}

// WithRunInfo returns a copy of the report carrying info. The receiver is
// left untouched.
func (r *ValidationReport) WithRunInfo(info RunInfo) *ValidationReport {
	return NewValidationReport(info, r.Rows, r.Structural, r.Content)
}

// Failed returns the outcomes that did not pass, structural first.
func (r *ValidationReport) Failed() []CheckOutcome {
	var out []CheckOutcome
	if !r.Structural.Passed {
		out = append(out, r.Structural)
	}
	for _, c := range r.Content {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the number of passed and failed checks, structural included.
func (r *ValidationReport) Counts() (passed, failed int) {
	if r.Structural.Passed {
		passed++
	} else {
		failed++
	}
	for _, c := range r.Content {
		if c.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// ScanReport aggregates the reports of a directory run.
type ScanReport struct {
	Dir        string              `json:"dir"`
	SchemaFile string              `json:"schema_file"`
	Passed     bool                `json:"overall_passed"`
	Reports    []*ValidationReport `json:"reports"`
	Errors     []FileError         `json:"errors,omitempty"`
}

// FileError is a data file that could not be validated at all.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// LintReport summarizes a schema check made without any data file.
type LintReport struct {
	SchemaFile  string   `json:"schema_file"`
	Valid       bool     `json:"valid"`
	Issues      []Issue  `json:"issues,omitempty"`
	Columns     []string `json:"columns,omitempty"`
	Rules       int      `json:"rules"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}
