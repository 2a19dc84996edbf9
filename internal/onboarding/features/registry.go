package features

import (
	"context"

	"onboarding/internal/catalog"
	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// Registry routes feature kinds to their executors. Built once at startup
// with all four executors; an unregistered kind at dispatch time means the
// wiring is broken, not that the request is bad.
type Registry struct {
	executors map[id.FeatureKind]Executor
}

// NewRegistry builds a registry from the given executors.
func NewRegistry(executors ...Executor) *Registry {
	m := make(map[id.FeatureKind]Executor, len(executors))
	for _, e := range executors {
		m[e.Kind()] = e
	}
	return &Registry{executors: m}
}

// Dispatch runs the executor registered for kind.
//
// Errors: CodeInvariantViolation when no executor is registered; otherwise
// whatever the executor returns.
func (r *Registry) Dispatch(ctx context.Context, kind id.FeatureKind, reqCtx models.RequestContext, product *catalog.Product) error {
	executor, ok := r.executors[kind]
	if !ok {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "no executor registered for feature %s", kind)
	}
	return executor.Execute(ctx, reqCtx, product)
}

// Kinds lists the registered feature kinds, in declared precedence order.
func (r *Registry) Kinds() []id.FeatureKind {
	out := make([]id.FeatureKind, 0, len(r.executors))
	for _, kind := range id.AllFeatureKinds {
		if _, ok := r.executors[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}
