package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lakecircle/core/lifecycle"

	"go.uber.org/zap"
)

// Kind selects a workflow.
type Kind string

const (
	// KindSync reconciles and mutates live buckets.
	KindSync Kind = "SYNC"
	// KindDryRun reconciles and reports without mutating anything.
	KindDryRun Kind = "DRYRUN"
	// KindSummarise describes the live rules of every bucket.
	KindSummarise Kind = "SUMMARISE"
)

// Kinds lists the supported workflows.
var Kinds = []Kind{KindSync, KindDryRun, KindSummarise}

// ParseKind parses a workflow name case-insensitively.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := workflows[k]; !ok {
		return "", fmt.Errorf("unknown workflow %q", name)
	}
	return k, nil
}

// Mutates reports whether the workflow changes live state.
func (k Kind) Mutates() bool {
	w, ok := workflows[k]
	return ok && w.mutates()
}

// Input is what a workflow executes on.
type Input struct {
	Plan   *Plan
	Actual lifecycle.State

	// Mutator is set for mutating workflows only.
	Mutator Mutator

	Summariser Summariser
}

// Workflow turns loaded state into bucket outcomes.
type Workflow interface {
	Kind() Kind
	Execute(ctx context.Context, in Input, log *zap.Logger) []BucketOutcome
	mutates() bool
	// ready reports a missing port of r.
	ready(r *Reconciler) error
}

var workflows = map[Kind]Workflow{
	KindSync:      syncWorkflow{},
	KindDryRun:    dryRunWorkflow{},
	KindSummarise: summariseWorkflow{},
}

// WorkflowFor returns the workflow registered for k.
func WorkflowFor(k Kind) (Workflow, error) {
	w, ok := workflows[k]
	if !ok {
		return nil, fmt.Errorf("unknown workflow %q", k)
	}
	return w, nil
}

type syncWorkflow struct{}

func (syncWorkflow) Kind() Kind    { return KindSync }
func (syncWorkflow) mutates() bool { return true }

func (syncWorkflow) ready(r *Reconciler) error {
	if r.Mutators == nil {
		return errors.New("no mutation port configured")
	}
	return nil
}

func (syncWorkflow) Execute(ctx context.Context, in Input, log *zap.Logger) []BucketOutcome {
	return Apply(ctx, in.Plan, in.Mutator, log)
}

type dryRunWorkflow struct{}

func (dryRunWorkflow) Kind() Kind    { return KindDryRun }
func (dryRunWorkflow) mutates() bool { return false }

func (dryRunWorkflow) ready(*Reconciler) error { return nil }

func (dryRunWorkflow) Execute(_ context.Context, in Input, log *zap.Logger) []BucketOutcome {
	outcomes := Simulate(in.Plan)
	for _, o := range outcomes {
		if o.Commit == CommitNone {
			continue
		}
		log.Info("Planned change",
			zap.String("bucket", o.Bucket),
			zap.Strings("add", o.AddedRules),
			zap.Strings("remove", o.RemovedRules),
			zap.String("commit", string(o.Commit)),
		)
	}
	return outcomes
}

type summariseWorkflow struct{}

func (summariseWorkflow) Kind() Kind    { return KindSummarise }
func (summariseWorkflow) mutates() bool { return false }

func (summariseWorkflow) ready(r *Reconciler) error {
	if r.Summariser == nil {
		return errors.New("no summariser configured")
	}
	return nil
}

// Execute summarises every live bucket holding rules, in lexical order. A
// failed summary becomes a warning on the bucket's outcome.
func (summariseWorkflow) Execute(ctx context.Context, in Input, log *zap.Logger) []BucketOutcome {
	var outcomes []BucketOutcome
	for _, bucket := range in.Actual.Buckets() {
		c := in.Actual[bucket]
		if c.IsEmpty() {
			log.Info("No lifecycle rules to summarise", zap.String("bucket", bucket))
			continue
		}

		out := BucketOutcome{Bucket: bucket, Commit: CommitNone}
		text, err := in.Summariser.Summarise(ctx, c)
		if err != nil {
			log.Error("Summary failed", zap.String("bucket", bucket), zap.Error(err))
			w := NewWarning(WarningSummary, "", err)
			w.Bucket = bucket
			out.Warnings = append(out.Warnings, w)
		} else {
			out.Summary = text
			log.Info("Lifecycle summary", zap.String("bucket", bucket), zap.String("summary", text))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}
