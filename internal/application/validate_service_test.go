package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filegate/filegate/internal/domain"
)

func quietConfig() domain.EngineConfig {
	cfg := domain.DefaultEngineConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestValidateFile_Pass(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "survey_lung_cancer.csv")
	svc := newValidateService(t, quietConfig(), "")

	report, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "survey_lung_cancer.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)

	assert.True(t, report.Passed, "%+v", report.Failed())
	assert.Equal(t, domain.StatusPass, report.Status)
	assert.Equal(t, 4, report.Rows)
	assert.Len(t, report.Content, 3)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.SchemaFingerprint, 32)
	assert.Empty(t, report.Warnings)
}

func TestValidateFile_ContentFailures(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "survey_lung_cancer_bad.csv")
	svc := newValidateService(t, quietConfig(), "")

	report, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "survey_lung_cancer_bad.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)

	assert.False(t, report.Passed)
	failed := map[string]domain.CheckOutcome{}
	for _, c := range report.Failed() {
		failed[c.Name] = c
	}
	require.Len(t, failed, 3)
	assert.Equal(t, []string{"row 2"}, failed["not_null(AGE)"].Samples)
	assert.Equal(t, 2, failed["date_format(VISIT_DATE)"].Violations)
	assert.Equal(t, []string{`row 2 "FEMALE" (6)`}, failed["string_length(GENDER)"].Samples)
	assert.Contains(t, report.Warnings, `file name "survey_lung_cancer_bad" does not match schema filename "survey_lung_cancer"`)
}

func TestValidateFile_ReorderedHeader(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "reordered.csv")
	svc := newValidateService(t, quietConfig(), "")

	report, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "reordered.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonColumnOrder, report.Structural.Reason)
	assert.Empty(t, report.Content)
}

func TestValidateFile_MissingDataFile(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml")
	svc := newValidateService(t, quietConfig(), "")

	_, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "absent.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
	var re *domain.ResourceError
	require.ErrorAs(t, err, &re)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidateFile_UnsupportedExtension(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml")
	data := filepath.Join(dir, "lung.xlsx")
	require.NoError(t, os.WriteFile(data, []byte("x"), 0644))
	svc := newValidateService(t, quietConfig(), "")

	_, err := svc.ValidateFile(context.Background(), data, filepath.Join(dir, "survey_lung_cancer.yaml"))
	assert.ErrorContains(t, err, "unsupported data file extension")
}

func TestValidateFile_InvalidSchema(t *testing.T) {
	dir := copyFixtures(t, "invalid_schema.yaml", "survey_lung_cancer.csv")
	svc := newValidateService(t, quietConfig(), "")

	_, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "survey_lung_cancer.csv"), filepath.Join(dir, "invalid_schema.yaml"))
	var ce *domain.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestValidateFile_RecordsHistoryAndMetrics(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "survey_lung_cancer.csv")
	promFile := filepath.Join(t.TempDir(), "filegate.prom")
	cfg := quietConfig()
	cfg.History.Limit = 2
	svc := newValidateService(t, cfg, promFile)

	for i := 0; i < 3; i++ {
		_, err := svc.ValidateFile(context.Background(),
			filepath.Join(dir, "survey_lung_cancer.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
		require.NoError(t, err)
	}

	entries, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.StatusPass, entries[1].Status)
	assert.Equal(t, 4, entries[1].Rows)

	data, err := os.ReadFile(promFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `filegate_runs_total{status="pass"} 3`)
}

func TestValidateFile_HistoryDisabled(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "survey_lung_cancer.csv")
	cfg := quietConfig()
	cfg.History.Enabled = false
	svc := newValidateService(t, cfg, "")

	_, err := svc.ValidateFile(context.Background(),
		filepath.Join(dir, "survey_lung_cancer.csv"), filepath.Join(dir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScanDir(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "survey_lung_cancer.csv", "survey_lung_cancer_bad.csv", "reordered.csv")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	svc := newValidateService(t, quietConfig(), "")

	scan, err := svc.ScanDir(context.Background(), dir, filepath.Join(dir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)

	assert.False(t, scan.Passed)
	assert.Empty(t, scan.Errors)
	require.Len(t, scan.Reports, 3)

	byFile := map[string]*domain.ValidationReport{}
	for _, r := range scan.Reports {
		byFile[filepath.Base(r.DataFile)] = r
	}
	assert.True(t, byFile["survey_lung_cancer.csv"].Passed)
	assert.False(t, byFile["survey_lung_cancer_bad.csv"].Passed)
	assert.Equal(t, domain.ReasonColumnOrder, byFile["reordered.csv"].Structural.Reason)
}

func TestScanDir_SchemaDeclaredExtension(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "pipes.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`metadata:
  file:
    filename: pipes
    extension: psv
    separator: "|"
  structure:
    num_columns: 2
  columns:
    - name: AGE
    - name: GENDER
  validations:
    not_null:
      - name: AGE
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pipes.psv"), []byte("AGE|GENDER\n69|M\n74|F\n"), 0644))
	svc := newValidateService(t, quietConfig(), "")

	scan, err := svc.ScanDir(context.Background(), dir, schemaPath)
	require.NoError(t, err)
	assert.Empty(t, scan.Errors)
	require.Len(t, scan.Reports, 1)
	assert.True(t, scan.Reports[0].Passed, "%+v", scan.Reports[0].Failed())

	report, err := svc.ValidateFile(context.Background(), filepath.Join(dir, "pipes.psv"), schemaPath)
	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Equal(t, 2, report.Rows)
}

func TestScanDir_InvalidSchemaStopsEarly(t *testing.T) {
	dir := copyFixtures(t, "invalid_schema.yaml", "survey_lung_cancer.csv")
	svc := newValidateService(t, quietConfig(), "")

	_, err := svc.ScanDir(context.Background(), dir, filepath.Join(dir, "invalid_schema.yaml"))
	var ce *domain.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestNameWarnings(t *testing.T) {
	schema := &domain.Schema{Filename: "survey_lung_cancer", FileExtension: "csv"}

	assert.Empty(t, nameWarnings("/data/SURVEY_LUNG_CANCER.CSV", schema))
	assert.Len(t, nameWarnings("/data/other.tsv", schema), 2)
	assert.Empty(t, nameWarnings("/data/other.tsv", &domain.Schema{}))
}
