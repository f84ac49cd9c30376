package reconcile

import (
	"context"
	"errors"

	"lakecircle/core/lifecycle"

	"go.uber.org/zap"
)

// BuildPlan intersects the bucket sets of desired and actual and diffs every
// shared bucket. Buckets present on one side only are left out. It performs
// no I/O.
func BuildPlan(desired, actual lifecycle.State) *Plan {
	shared := lifecycle.Shared(desired, actual)

	plan := &Plan{
		Buckets: make([]BucketPlan, 0, len(shared)),
		Summary: PlanSummary{
			DesiredBuckets: len(desired),
			ActualBuckets:  len(actual),
			SharedBuckets:  len(shared),
		},
	}

	for _, bucket := range shared {
		changes := desired[bucket].Difference(actual[bucket])
		bp := BucketPlan{
			Bucket:  bucket,
			Changes: changes,
			Actual:  actual[bucket],
			Commit:  CommitNone,
		}
		if !changes.IsEmpty() {
			bp.Commit = CommitModeFor(changes.Apply(actual[bucket]))
			plan.Summary.ChangedBuckets++
			plan.Summary.RulesToAdd += len(changes.Added)
			plan.Summary.RulesToRemove += len(changes.Removed)
		}
		plan.Buckets = append(plan.Buckets, bp)
	}
	return plan
}

// Apply drives the mutation port through every bucket of plan in order.
// Failed rule mutations become warnings and the loop moves on; the commit is
// issued only when at least one mutation was staged.
func Apply(ctx context.Context, plan *Plan, m Mutator, log *zap.Logger) []BucketOutcome {
	outcomes := make([]BucketOutcome, 0, len(plan.Buckets))
	for _, bp := range plan.Buckets {
		outcomes = append(outcomes, applyBucket(ctx, bp, m, log.With(zap.String("bucket", bp.Bucket))))
	}
	return outcomes
}

func applyBucket(ctx context.Context, bp BucketPlan, m Mutator, log *zap.Logger) BucketOutcome {
	out := BucketOutcome{Bucket: bp.Bucket, Commit: CommitNone}
	if bp.Changes.IsEmpty() {
		log.Debug("Bucket unchanged")
		return out
	}

	warn := func(err error) {
		w := NewWarning(WarningMutation, "", err)
		out.Warnings = append(out.Warnings, w)
		log.Warn("Mutation failed", zap.String("rule", w.Rule), zap.Error(err))
	}

	for _, rule := range bp.Changes.Added {
		if err := m.AddRule(ctx, bp.Bucket, rule); err != nil {
			warn(asMutationError(bp.Bucket, rule, OpAdd, err))
			continue
		}
		out.Added++
		out.AddedRules = append(out.AddedRules, rule.ID())
		log.Info("Rule added", zap.String("rule", rule.ID()), zap.String("fingerprint", rule.Fingerprint()))
	}

	for _, rule := range bp.Changes.Removed {
		if err := m.RemoveRule(ctx, bp.Bucket, rule); err != nil {
			warn(asMutationError(bp.Bucket, rule, OpRemove, err))
			continue
		}
		out.Removed++
		out.RemovedRules = append(out.RemovedRules, rule.ID())
		log.Info("Rule removed", zap.String("rule", rule.ID()), zap.String("fingerprint", rule.Fingerprint()))
	}

	if out.Added+out.Removed == 0 {
		return out
	}

	mode, err := m.Commit(ctx, bp.Bucket)
	out.Commit = mode
	if err != nil {
		warn(asMutationError(bp.Bucket, nil, OpCommit, err))
		return out
	}
	out.Committed = true
	log.Info("Bucket committed", zap.String("mode", string(mode)), zap.Int("added", out.Added), zap.Int("removed", out.Removed))
	return out
}

// Simulate returns the outcomes a sync would produce without calling any port.
func Simulate(plan *Plan) []BucketOutcome {
	outcomes := make([]BucketOutcome, 0, len(plan.Buckets))
	for _, bp := range plan.Buckets {
		outcomes = append(outcomes, BucketOutcome{
			Bucket:       bp.Bucket,
			Added:        len(bp.Changes.Added),
			Removed:      len(bp.Changes.Removed),
			AddedRules:   nilIfEmpty(lifecycle.IDs(bp.Changes.Added)),
			RemovedRules: nilIfEmpty(lifecycle.IDs(bp.Changes.Removed)),
			Commit:       bp.Commit,
		})
	}
	return outcomes
}

func asMutationError(bucket string, rule *lifecycle.Rule, op Operation, err error) error {
	var existing *MutationError
	if errors.As(err, &existing) {
		return err
	}
	me := &MutationError{Bucket: bucket, Op: op, Err: err}
	if rule != nil {
		me.Rule = rule.ID()
	}
	return me
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
