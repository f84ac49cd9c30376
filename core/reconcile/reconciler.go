package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler runs workflows for one account and region.
type Reconciler struct {
	// Account and Region identify the live side.
	Account string
	Region  string

	// Desired loads the declared state.
	Desired LoadFunc

	// Actual loads the live state.
	Actual LoadFunc

	// Mutators builds the mutation port of a sync run.
	Mutators MutatorFactory

	// Summariser describes live rules in a summarise run.
	Summariser Summariser

	// Cache, when set, serves dry runs from recently loaded state. Mutating
	// runs always load fresh state and invalidate the cache.
	Cache *SnapshotCache

	// CacheKey distinguishes cached states of different configurations.
	CacheKey string

	Logger *zap.Logger
}

// Load reads both sides, through the cache when allowed.
func (r *Reconciler) Load(ctx context.Context, useCache bool) (*Loaded, error) {
	load := func(ctx context.Context) (*Loaded, error) {
		return LoadBoth(ctx, r.Desired, r.Actual)
	}
	if r.Cache == nil {
		return load(ctx)
	}
	if !useCache {
		r.Cache.Invalidate(r.CacheKey)
		return load(ctx)
	}
	return r.Cache.GetOrLoad(ctx, r.CacheKey, load)
}

// Run executes the workflow selected by kind. The report is always returned;
// the error is non-nil only when the run aborted while loading.
func (r *Reconciler) Run(ctx context.Context, kind Kind) (*Report, error) {
	log := r.logger().With(zap.String("workflow", string(kind)))

	report := &Report{
		RunID:     uuid.NewString(),
		Workflow:  kind,
		Status:    StatusAborted,
		Account:   r.Account,
		Region:    r.Region,
		StartedAt: time.Now().UTC(),
	}
	log = log.With(zap.String("run_id", report.RunID))

	abort := func(err error) (*Report, error) {
		report.Error = err.Error()
		report.FinishedAt = time.Now().UTC()
		log.Error("Run aborted", zap.Error(err))
		return report, err
	}

	workflow, err := WorkflowFor(kind)
	if err != nil {
		return abort(err)
	}
	if err := workflow.ready(r); err != nil {
		return abort(err)
	}

	log.Info("Loading desired and actual state")
	loaded, err := r.Load(ctx, !workflow.mutates())
	if err != nil {
		return abort(err)
	}
	report.Warnings = append(report.Warnings, loaded.Desired.Warnings...)
	report.Warnings = append(report.Warnings, loaded.Actual.Warnings...)

	plan := BuildPlan(loaded.Desired.State, loaded.Actual.State)
	report.Summary = plan.Summary
	log.Info("Plan built",
		zap.Int("desired_buckets", plan.Summary.DesiredBuckets),
		zap.Int("actual_buckets", plan.Summary.ActualBuckets),
		zap.Int("shared_buckets", plan.Summary.SharedBuckets),
		zap.Int("rules_to_add", plan.Summary.RulesToAdd),
		zap.Int("rules_to_remove", plan.Summary.RulesToRemove),
	)

	in := Input{Plan: plan, Actual: loaded.Actual.State, Summariser: r.Summariser}
	if workflow.mutates() {
		in.Mutator = r.Mutators(loaded.Actual.State)
	}
	report.Outcomes = workflow.Execute(ctx, in, log)
	report.Status = StatusCompleted
	report.FinishedAt = time.Now().UTC()

	added, removed := report.Totals()
	log.Info("Run completed",
		zap.Int("added", added),
		zap.Int("removed", removed),
		zap.Int("warnings", report.WarningCount()),
	)
	return report, nil
}

func (r *Reconciler) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
