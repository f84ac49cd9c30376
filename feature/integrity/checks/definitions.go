package checks

import (
	"context"

	"lakecircle/core/reconcile"
	"lakecircle/core/storage"
	"lakecircle/feature/definition"
)

// DefinitionReport summarises the definition folder of an endpoint.
type DefinitionReport struct {
	Buckets  int                 `json:"buckets"`
	Rules    int                 `json:"rules"`
	Warnings []reconcile.Warning `json:"warnings"`
}

// CheckDefinitions loads every definition file under ep and reports the
// files and rules that would be skipped by a run.
func CheckDefinitions(ctx context.Context, loader *definition.Loader, ep storage.Endpoint) (*DefinitionReport, error) {
	snap, err := loader.Load(ctx, ep.Definition())
	if err != nil {
		return nil, err
	}
	report := &DefinitionReport{
		Buckets:  len(snap.State),
		Rules:    snap.State.RuleCount(),
		Warnings: snap.Warnings,
	}
	if report.Warnings == nil {
		report.Warnings = []reconcile.Warning{}
	}
	return report, nil
}
