// Package rules holds the catalog of content rule kinds. Each rule is a pure
// predicate over the values of one column plus the target's parameters.
package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/filegate/filegate/internal/domain"
)

// Result is what a rule reports for one column.
type Result struct {
	Passed     bool
	Violations int
	Samples    []string
	Detail     string
}

// Rule checks the values of one column. limit bounds len(Result.Samples).
type Rule interface {
	Check(values []any, params domain.Params, limit int) Result
	Description() string
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc struct {
	Fn   func(values []any, params domain.Params, limit int) Result
	Desc string
}

func (f RuleFunc) Check(values []any, params domain.Params, limit int) Result {
	return f.Fn(values, params, limit)
}

func (f RuleFunc) Description() string { return f.Desc }

// KindInfo describes a registered kind.
type KindInfo struct {
	Kind        domain.RuleKind `json:"kind"`
	Description string          `json:"description"`
}

// Registry maps rule kinds to rules. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules map[domain.RuleKind]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[domain.RuleKind]Rule)}
}

// Default returns a registry holding the built-in rules.
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register(domain.RuleNotNull, NotNull{})
	_ = r.Register(domain.RuleDateFormat, DateFormat{})
	_ = r.Register(domain.RuleMaxStringLength, MaxStringLength{})
	return r
}

// Register adds a rule kind. Registering a kind twice is an error.
func (r *Registry) Register(kind domain.RuleKind, rule Rule) error {
	if kind == "" || rule == nil {
		return fmt.Errorf("rule kind and rule are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[kind]; exists {
		return fmt.Errorf("rule kind %q already registered", kind)
	}
	r.rules[kind] = rule
	return nil
}

// Lookup returns the rule registered for kind.
func (r *Registry) Lookup(kind domain.RuleKind) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[kind]
	return rule, ok
}

// Kinds lists registered kinds sorted by name.
func (r *Registry) Kinds() []KindInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]KindInfo, 0, len(r.rules))
	for k, rule := range r.rules {
		out = append(out, KindInfo{Kind: k, Description: rule.Description()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Supports returns a *domain.ConfigurationError naming every rule kind of
// schema that has no registered rule.
func (r *Registry) Supports(schema *domain.Schema) error {
	var issues []domain.Issue
	for _, spec := range schema.Rules {
		if _, ok := r.Lookup(spec.Kind); !ok {
			issues = append(issues, domain.Issue{
				Path:    "metadata.validations." + string(spec.Kind),
				Message: fmt.Sprintf("unknown rule kind %q", spec.Kind),
			})
		}
	}
	if len(issues) > 0 {
		return &domain.ConfigurationError{Source: schema.Source, Issues: issues}
	}
	return nil
}
