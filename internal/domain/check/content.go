package check

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/rules"
)

// job is one rule x target evaluation. idx is its slot in the output.
type job struct {
	idx    int
	kind   domain.RuleKind
	rule   rules.Rule
	target domain.RuleTarget
}

// CheckContent evaluates every declared rule against its target columns and
// returns one outcome per rule x target, in the schema's declared order.
// A failing column never stops the others. The error is non-nil only when
// ctx is done or a rule kind is not registered.
func CheckContent(ctx context.Context, ds *domain.Dataset, schema *domain.Schema, registry *rules.Registry, opts Options) ([]domain.CheckOutcome, error) {
	opts = opts.withDefaults()
	if err := registry.Supports(schema); err != nil {
		return nil, err
	}

	jobs := make([]job, 0, schema.RuleCount())
	for _, spec := range schema.Rules {
		rule, _ := registry.Lookup(spec.Kind)
		for _, t := range spec.Targets {
			jobs = append(jobs, job{idx: len(jobs), kind: spec.Kind, rule: rule, target: t})
		}
	}

	outcomes := make([]domain.CheckOutcome, len(jobs))
	columns := newColumnCache(ds)

	if opts.Workers <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[j.idx] = evaluate(j, columns, opts.MaxSamples)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[j.idx] = evaluate(j, columns, opts.MaxSamples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func evaluate(j job, columns *columnCache, limit int) domain.CheckOutcome {
	outcome := domain.CheckOutcome{
		Name:   domain.OutcomeName(j.kind, j.target.Column),
		Kind:   j.kind,
		Column: j.target.Column,
	}
	values, ok := columns.get(j.target.Column)
	if !ok {
		outcome.Violations = 1
		outcome.Detail = fmt.Sprintf("column %s is not present in the file", j.target.Column)
		return outcome
	}
	res := j.rule.Check(values, j.target.Params, limit)
	outcome.Passed = res.Passed
	outcome.Violations = res.Violations
	outcome.Samples = res.Samples
	outcome.Detail = res.Detail
	return outcome
}
