package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filegate/filegate/internal/adapters/outbound/cache"
	"github.com/filegate/filegate/internal/domain"
)

func TestSchemaService_Load(t *testing.T) {
	svc := newSchemaService(false)

	schema, err := svc.Load(filepath.Join(fixtureDir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AGE", "GENDER", "SMOKING", "VISIT_DATE"}, schema.ExpectedColumns)
	assert.Equal(t, 3, schema.RuleCount())
	assert.Len(t, schema.Fingerprint, 32)
	assert.Contains(t, schema.Source, "survey_lung_cancer.yaml")
}

func TestSchemaService_LoadUsesCache(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml")
	path := filepath.Join(dir, "survey_lung_cancer.yaml")
	svc := newSchemaService(true)

	first, err := svc.Load(path)
	require.NoError(t, err)

	cached, err := cache.New().Load(path)
	require.NoError(t, err)
	require.NotNil(t, cached, "first load writes the cache")
	assert.Equal(t, first.Fingerprint, cached.Fingerprint)

	second, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, first.ExpectedColumns, second.ExpectedColumns)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestSchemaService_EditedSchemaInvalidatesCache(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml")
	path := filepath.Join(dir, "survey_lung_cancer.yaml")
	svc := newSchemaService(true)

	_, err := svc.Load(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := []byte(string(data) + "      - name: SMOKING\n        length: 1\n")
	require.NoError(t, os.WriteFile(path, edited, 0644))

	schema, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, schema.RuleCount(), "rebuilt from the edited file")
}

func TestSchemaService_BrokenSchemaDropsCacheEntry(t *testing.T) {
	dir := copyFixtures(t, "survey_lung_cancer.yaml", "invalid_schema.yaml")
	path := filepath.Join(dir, "survey_lung_cancer.yaml")
	svc := newSchemaService(true)

	_, err := svc.Load(path)
	require.NoError(t, err)

	broken, err := os.ReadFile(filepath.Join(dir, "invalid_schema.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, broken, 0644))

	_, err = svc.Load(path)
	var ce *domain.ConfigurationError
	require.ErrorAs(t, err, &ce)

	cached, err := cache.New().Load(path)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestSchemaService_ConfigurationErrorCarriesSource(t *testing.T) {
	path := filepath.Join(fixtureDir, "invalid_schema.yaml")
	_, err := newSchemaService(false).Load(path)

	var ce *domain.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, path, ce.Source)
	assert.Len(t, ce.Issues, 3)
}

func TestSchemaService_Lint(t *testing.T) {
	svc := newSchemaService(true)

	ok, err := svc.Lint(filepath.Join(fixtureDir, "survey_lung_cancer.yaml"))
	require.NoError(t, err)
	assert.True(t, ok.Valid)
	assert.Equal(t, 3, ok.Rules)
	assert.Empty(t, ok.Issues)

	bad, err := svc.Lint(filepath.Join(fixtureDir, "invalid_schema.yaml"))
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.Len(t, bad.Issues, 3)

	_, err = svc.Lint(filepath.Join(fixtureDir, "missing.yaml"))
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(fixtureDir, ".filegate"))
	assert.True(t, os.IsNotExist(statErr), "lint never writes the cache")
}
