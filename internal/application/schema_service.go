package application

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/rules"
)

// SchemaService loads schema files into validated Schemas, going through the
// build cache when enabled.
type SchemaService struct {
	source   domain.SchemaSource
	cache    domain.SchemaCache
	registry *rules.Registry
	useCache bool
	log      *zap.SugaredLogger
}

func NewSchemaService(
	source domain.SchemaSource,
	cache domain.SchemaCache,
	registry *rules.Registry,
	useCache bool,
	log *zap.SugaredLogger,
) *SchemaService {
	if registry == nil {
		registry = rules.Default()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SchemaService{source: source, cache: cache, registry: registry, useCache: useCache && cache != nil, log: log}
}

// Registry returns the rule registry schemas are checked against.
func (s *SchemaService) Registry() *rules.Registry { return s.registry }

// Load reads and builds the schema at path. Problems with the schema
// itself come back as *domain.ConfigurationError.
func (s *SchemaService) Load(path string) (*domain.Schema, error) {
	// 1. Read raw mapping and bytes
	raw, data, err := s.source.Read(path)
	if err != nil {
		return nil, err
	}
	fingerprint := ""
	if s.cache != nil {
		fingerprint = s.cache.Fingerprint(data)
	}

	// 2. Cached build
	if s.useCache {
		cached, err := s.cache.Load(path)
		if err != nil {
			s.log.Debugw("schema cache unreadable", "schema", path, "err", err)
		}
		if err == nil && cached != nil && !cached.IsInvalidated(fingerprint) {
			schema := cached.Schema
			schema.Source = path
			if err := s.registry.Supports(schema); err != nil {
				return nil, err
			}
			s.log.Debugw("schema loaded from cache", "schema", path, "fingerprint", fingerprint)
			return schema, nil
		}
	}

	// 3. Build
	schema, err := domain.BuildSchema(raw)
	if err != nil {
		var ce *domain.ConfigurationError
		if errors.As(err, &ce) {
			ce.Source = path
		}
		if s.useCache {
			if ierr := s.cache.Invalidate(path); ierr != nil {
				s.log.Debugw("schema cache not invalidated", "schema", path, "err", ierr)
			}
		}
		return nil, err
	}
	schema.Source = path
	schema.Fingerprint = fingerprint

	// 4. Every rule kind must be registered
	if err := s.registry.Supports(schema); err != nil {
		return nil, err
	}

	// 5. Save cache
	if s.useCache {
		if err := s.cache.Save(&domain.CachedSchema{SchemaPath: path, Fingerprint: fingerprint, Schema: schema}); err != nil {
			s.log.Warnw("schema cache not saved", "schema", path, "err", err)
		}
	}

	s.log.Infow("schema loaded", "schema", path, "columns", schema.ExpectedColumnCount, "rules", schema.RuleCount())
	return schema, nil
}

// Lint builds the schema at path without the cache and reports every
// configuration issue. Only unreadable files are errors.
func (s *SchemaService) Lint(path string) (*domain.LintReport, error) {
	uncached := *s
	uncached.useCache = false

	report := &domain.LintReport{SchemaFile: filepath.Clean(path)}
	schema, err := uncached.Load(path)
	if err != nil {
		var ce *domain.ConfigurationError
		if errors.As(err, &ce) {
			report.Issues = ce.Issues
			return report, nil
		}
		return nil, fmt.Errorf("linting %s: %w", path, err)
	}

	report.Valid = true
	report.Columns = schema.ExpectedColumns
	report.Rules = schema.RuleCount()
	report.Fingerprint = schema.Fingerprint
	return report, nil
}
