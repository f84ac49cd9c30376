package history

import (
	"context"
	"fmt"

	"lakecircle/core/reconcile"

	"gorm.io/gorm"
)

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 20

// Store persists run reports in the history database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&RunRecord{}, &OutcomeRecord{})
}

// Record persists report and its bucket outcomes.
func (s *Store) Record(ctx context.Context, report *reconcile.Report) error {
	rec := FromReport(report)
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("record run %s: %w", report.RunID, err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var runs []RunRecord
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// FromReport converts a report into its persisted form.
func FromReport(report *reconcile.Report) *RunRecord {
	added, removed := report.Totals()
	rec := &RunRecord{
		RunID:      report.RunID,
		Workflow:   string(report.Workflow),
		Status:     string(report.Status),
		Account:    report.Account,
		Region:     report.Region,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Added:      added,
		Removed:    removed,
		Warnings:   report.WarningCount(),
		Error:      report.Error,
	}
	for _, o := range report.Outcomes {
		rec.Outcomes = append(rec.Outcomes, OutcomeRecord{
			Bucket:    o.Bucket,
			Added:     o.Added,
			Removed:   o.Removed,
			Commit:    string(o.Commit),
			Committed: o.Committed,
			Warnings:  len(o.Warnings),
		})
	}
	return rec
}
