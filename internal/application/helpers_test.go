package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/filegate/filegate/internal/adapters/outbound/cache"
	"github.com/filegate/filegate/internal/adapters/outbound/csvreader"
	"github.com/filegate/filegate/internal/adapters/outbound/gitinfo"
	"github.com/filegate/filegate/internal/adapters/outbound/history"
	"github.com/filegate/filegate/internal/adapters/outbound/metrics"
	"github.com/filegate/filegate/internal/adapters/outbound/scanner"
	"github.com/filegate/filegate/internal/adapters/outbound/schemafile"
	"github.com/filegate/filegate/internal/domain"
)

const fixtureDir = "../../testdata/lung"

// copyFixtures copies the named testdata/lung files into a fresh directory
// so runs can write history and cache entries next to them.
func copyFixtures(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(fixtureDir, n))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), data, 0644))
	}
	return dir
}

func newSchemaService(useCache bool) *SchemaService {
	return NewSchemaService(schemafile.New(), cache.New(), nil, useCache, zap.NewNop().Sugar())
}

func newValidateService(t *testing.T, cfg domain.EngineConfig, metricsFile string) *ValidateService {
	t.Helper()
	rec, err := metrics.NewTextfile(metricsFile)
	require.NoError(t, err)
	return NewValidateService(cfg, newSchemaService(cfg.Cache.Enabled), csvreader.New(), scanner.New(),
		history.New(), gitinfo.New(), rec, zap.NewNop().Sugar())
}
