package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"lakecircle/core/reconcile"

	"go.uber.org/zap"
)

// printReport logs the summary and the per bucket changes of report.
func printReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary
	l.Info("Run report",
		zap.String("run_id", report.RunID),
		zap.String("workflow", string(report.Workflow)),
		zap.String("status", string(report.Status)),
		zap.Int("desired_buckets", s.DesiredBuckets),
		zap.Int("actual_buckets", s.ActualBuckets),
		zap.Int("shared_buckets", s.SharedBuckets),
		zap.Int("changed_buckets", s.ChangedBuckets),
		zap.Int("rules_to_add", s.RulesToAdd),
		zap.Int("rules_to_remove", s.RulesToRemove),
	)

	for _, o := range report.Outcomes {
		if o.Summary != "" {
			l.Info("Bucket summary", zap.String("bucket", o.Bucket), zap.String("summary", o.Summary))
			continue
		}
		if o.Commit == reconcile.CommitNone && len(o.Warnings) == 0 {
			continue
		}
		l.Info("Bucket",
			zap.String("bucket", o.Bucket),
			zap.Strings("added", o.AddedRules),
			zap.Strings("removed", o.RemovedRules),
			zap.String("commit", string(o.Commit)),
			zap.Bool("committed", o.Committed),
		)
	}

	for _, w := range report.AllWarnings() {
		l.Warn("Warning",
			zap.String("kind", string(w.Kind)),
			zap.String("bucket", w.Bucket),
			zap.String("rule", w.Rule),
			zap.String("source", w.Source),
			zap.String("message", w.Message),
		)
	}
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
