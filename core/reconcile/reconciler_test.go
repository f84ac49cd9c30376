package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"
	"lakecircle/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReconciler_Run(t *testing.T) {
	ctx := context.Background()
	add := expireAfter("a", 90)
	desired := state(lifecycle.NewRuleCollection("b1", add))
	actual := state(lifecycle.NewRuleCollection("b1"), lifecycle.NewRuleCollection("b2"))

	t.Run("SyncCompleted", func(t *testing.T) {
		m := new(mocks.Mutator)
		m.On("AddRule", mock.Anything, "b1", add).Return(nil)
		m.On("Commit", mock.Anything, "b1").Return(reconcile.CommitPut, nil)

		var staged lifecycle.State
		r := &reconcile.Reconciler{
			Account: "123456789012",
			Region:  "eu-west-1",
			Desired: staticLoad(desired, reconcile.Warning{Kind: reconcile.WarningDefinition, Message: "skipped"}),
			Actual:  staticLoad(actual),
			Mutators: func(s lifecycle.State) reconcile.Mutator {
				staged = s
				return m
			},
			Logger: zap.NewNop(),
		}

		report, err := r.Run(ctx, reconcile.KindSync)
		require.NoError(t, err)

		assert.Equal(t, reconcile.StatusCompleted, report.Status)
		assert.Equal(t, reconcile.KindSync, report.Workflow)
		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, "123456789012", report.Account)
		assert.Equal(t, 1, report.Summary.SharedBuckets)
		assert.Len(t, report.Warnings, 1)
		require.Len(t, report.Outcomes, 1)
		assert.True(t, report.Outcomes[0].Committed)
		assert.Equal(t, actual, staged)
		assert.False(t, report.FinishedAt.Before(report.StartedAt))
		m.AssertExpectations(t)
	})

	t.Run("DryRunDoesNotMutate", func(t *testing.T) {
		called := false
		r := &reconcile.Reconciler{
			Desired: staticLoad(desired),
			Actual:  staticLoad(actual),
			Mutators: func(lifecycle.State) reconcile.Mutator {
				called = true
				return new(mocks.Mutator)
			},
		}

		report, err := r.Run(ctx, reconcile.KindDryRun)
		require.NoError(t, err)

		assert.False(t, called)
		assert.Equal(t, reconcile.StatusCompleted, report.Status)
		require.Len(t, report.Outcomes, 1)
		assert.Equal(t, reconcile.CommitPut, report.Outcomes[0].Commit)
		assert.False(t, report.Outcomes[0].Committed)
		added, removed := report.Totals()
		assert.Equal(t, 1, added)
		assert.Equal(t, 0, removed)
	})

	t.Run("LoadErrorAborts", func(t *testing.T) {
		m := new(mocks.Mutator)
		r := &reconcile.Reconciler{
			Desired:  staticLoad(desired),
			Actual:   failingLoad(errors.New("list buckets: access denied")),
			Mutators: func(lifecycle.State) reconcile.Mutator { return m },
		}

		report, err := r.Run(ctx, reconcile.KindSync)
		require.Error(t, err)

		assert.Equal(t, reconcile.StatusAborted, report.Status)
		assert.Contains(t, report.Error, "access denied")
		assert.Empty(t, report.Outcomes)
		m.AssertNotCalled(t, "AddRule", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownWorkflowAborts", func(t *testing.T) {
		r := &reconcile.Reconciler{Desired: staticLoad(desired), Actual: staticLoad(actual)}
		report, err := r.Run(ctx, reconcile.Kind("ARCHIVE"))
		assert.Error(t, err)
		assert.Equal(t, reconcile.StatusAborted, report.Status)
	})

	t.Run("SyncWithoutMutatorsAborts", func(t *testing.T) {
		r := &reconcile.Reconciler{Desired: staticLoad(desired), Actual: staticLoad(actual)}
		report, err := r.Run(ctx, reconcile.KindSync)
		assert.Error(t, err)
		assert.Equal(t, reconcile.StatusAborted, report.Status)
	})

	t.Run("SummariseWithoutSummariserAborts", func(t *testing.T) {
		r := &reconcile.Reconciler{Desired: staticLoad(desired), Actual: staticLoad(actual)}
		report, err := r.Run(ctx, reconcile.KindSummarise)
		assert.Error(t, err)
		assert.Equal(t, reconcile.StatusAborted, report.Status)
	})

	t.Run("SummariseDescribesLiveBuckets", func(t *testing.T) {
		logs := lifecycle.NewRuleCollection("logs", expireAfter("a", 30))
		media := lifecycle.NewRuleCollection("media", expireAfter("b", 60))
		live := state(lifecycle.NewRuleCollection("bare"), media, logs)

		s := new(mocks.Summariser)
		s.On("Summarise", mock.Anything, logs).Return("- Where: everything\n- Actions: expire after 30 days", nil)
		s.On("Summarise", mock.Anything, media).Return("", errors.New("throttled"))

		called := false
		r := &reconcile.Reconciler{
			Desired:    staticLoad(desired),
			Actual:     staticLoad(live),
			Summariser: s,
			Mutators: func(lifecycle.State) reconcile.Mutator {
				called = true
				return new(mocks.Mutator)
			},
		}

		report, err := r.Run(ctx, reconcile.KindSummarise)
		require.NoError(t, err)

		assert.False(t, called)
		assert.Equal(t, reconcile.StatusCompleted, report.Status)
		require.Len(t, report.Outcomes, 2)

		assert.Equal(t, "logs", report.Outcomes[0].Bucket)
		assert.Equal(t, reconcile.CommitNone, report.Outcomes[0].Commit)
		assert.Contains(t, report.Outcomes[0].Summary, "expire after 30 days")
		assert.Empty(t, report.Outcomes[0].Warnings)

		assert.Equal(t, "media", report.Outcomes[1].Bucket)
		assert.Empty(t, report.Outcomes[1].Summary)
		require.Len(t, report.Outcomes[1].Warnings, 1)
		assert.Equal(t, reconcile.WarningSummary, report.Outcomes[1].Warnings[0].Kind)
		assert.Equal(t, "media", report.Outcomes[1].Warnings[0].Bucket)
		assert.Equal(t, 1, report.WarningCount())
		s.AssertNotCalled(t, "Summarise", mock.Anything, live["bare"])
		s.AssertExpectations(t)
	})
}

func TestReconciler_Load(t *testing.T) {
	ctx := context.Background()
	var loads int
	counting := func(context.Context) (*reconcile.Snapshot, error) {
		loads++
		return &reconcile.Snapshot{}, nil
	}

	r := &reconcile.Reconciler{
		Desired:  counting,
		Actual:   staticLoad(nil),
		Cache:    reconcile.NewSnapshotCache(time.Minute),
		CacheKey: "acct/region",
	}

	_, err := r.Load(ctx, true)
	require.NoError(t, err)
	_, err = r.Load(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	_, err = r.Load(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
