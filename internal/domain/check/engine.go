package check

import (
	"context"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/rules"
)

const (
	DefaultWorkers    = 4
	DefaultMaxSamples = 10
)

// Options tunes content evaluation. Zero values mean defaults.
type Options struct {
	Workers    int
	MaxSamples int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.MaxSamples <= 0 {
		o.MaxSamples = DefaultMaxSamples
	}
	return o
}

// Engine runs the structural check and, when it passes, every content rule
// of a schema against a dataset. The zero value uses the built-in rules.
type Engine struct {
	Registry *rules.Registry
	Options  Options
}

// NewEngine returns an engine over registry. A nil registry means the
// built-in rules.
func NewEngine(registry *rules.Registry, opts Options) *Engine {
	if registry == nil {
		registry = rules.Default()
	}
	return &Engine{Registry: registry, Options: opts.withDefaults()}
}

// Validate checks ds against schema. Rule failures are data in the report;
// the error is non-nil only for an unsupported schema or a done ctx.
func (e *Engine) Validate(ctx context.Context, ds *domain.Dataset, schema *domain.Schema) (*domain.ValidationReport, error) {
	registry := e.Registry
	if registry == nil {
		registry = rules.Default()
	}

	// 1. Unknown rule kinds are rejected before any data is looked at.
	if err := registry.Supports(schema); err != nil {
		return nil, err
	}

	// 2. Header
	structural := CheckHeader(ds.Header, schema)
	if !structural.Passed {
		return domain.NewValidationReport(domain.RunInfo{}, len(ds.Rows), structural, nil), nil
	}

	// 3. Content
	content, err := CheckContent(ctx, ds, schema, registry, e.Options)
	if err != nil {
		return nil, err
	}
	return domain.NewValidationReport(domain.RunInfo{}, len(ds.Rows), structural, content), nil
}

// columnCache extracts each referenced column once, keyed by normalized name.
// It is filled before workers start, so reads need no lock.
type columnCache struct {
	values map[string][]any
}

func newColumnCache(ds *domain.Dataset) *columnCache {
	c := &columnCache{values: make(map[string][]any, len(ds.Header))}
	for _, h := range ds.Header {
		name := domain.NormalizeColumn(h)
		if _, dup := c.values[name]; dup {
			continue
		}
		c.values[name] = ds.Column(h)
	}
	return c
}

func (c *columnCache) get(name string) ([]any, bool) {
	v, ok := c.values[name]
	return v, ok
}
