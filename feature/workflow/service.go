package workflow

import (
	"context"
	"errors"

	"lakecircle/core/reconcile"
	"lakecircle/feature/history"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrHistoryDisabled is returned by Runs when no history store is configured.
var ErrHistoryDisabled = errors.New("run history is disabled")

// RunLister lists persisted runs.
type RunLister interface {
	List(ctx context.Context, limit int) ([]history.RunRecord, error)
}

// Service executes workflows and records their reports.
type Service struct {
	reconciler *reconcile.Reconciler
	recorder   reconcile.Recorder
	runs       RunLister
	logger     *zap.Logger
	sf         singleflight.Group
}

// NewService creates a workflow service. recorder and runs may be nil.
func NewService(r *reconcile.Reconciler, recorder reconcile.Recorder, runs RunLister, logger *zap.Logger) *Service {
	return &Service{
		reconciler: r,
		recorder:   recorder,
		runs:       runs,
		logger:     logger.Named("workflow"),
	}
}

// Run executes the workflow kind and records its report. Concurrent mutating
// runs are collapsed into one.
func (s *Service) Run(ctx context.Context, kind reconcile.Kind) (*reconcile.Report, error) {
	if !kind.Mutates() {
		return s.execute(ctx, kind)
	}

	type result struct {
		report *reconcile.Report
		err    error
	}
	v, _, shared := s.sf.Do(string(kind), func() (interface{}, error) {
		report, err := s.execute(ctx, kind)
		return result{report: report, err: err}, nil
	})
	if shared {
		s.logger.Info("Joined running workflow", zap.String("workflow", string(kind)))
	}
	res := v.(result)
	return res.report, res.err
}

func (s *Service) execute(ctx context.Context, kind reconcile.Kind) (*reconcile.Report, error) {
	report, err := s.reconciler.Run(ctx, kind)
	s.record(ctx, report)
	return report, err
}

// RunAll executes kinds in order and stops at the first aborted run.
func (s *Service) RunAll(ctx context.Context, kinds []reconcile.Kind) ([]*reconcile.Report, error) {
	reports := make([]*reconcile.Report, 0, len(kinds))
	for _, k := range kinds {
		report, err := s.Run(ctx, k)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

// Plan returns a dry run report without recording it.
func (s *Service) Plan(ctx context.Context) (*reconcile.Report, error) {
	return s.reconciler.Run(ctx, reconcile.KindDryRun)
}

// Summarise describes the live rules of every bucket and records the report.
func (s *Service) Summarise(ctx context.Context) (*reconcile.Report, error) {
	return s.Run(ctx, reconcile.KindSummarise)
}

// Runs returns the most recent persisted runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]history.RunRecord, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.List(ctx, limit)
}

func (s *Service) record(ctx context.Context, report *reconcile.Report) {
	if s.recorder == nil || report == nil {
		return
	}
	if err := s.recorder.Record(ctx, report); err != nil {
		s.logger.Warn("Failed to record run", zap.String("run_id", report.RunID), zap.Error(err))
	}
}
