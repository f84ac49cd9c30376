package reconcile

import (
	"context"

	"lakecircle/core/lifecycle"
)

// LoadFunc produces one side of a reconciliation. A returned error is fatal
// to the run; contained problems belong in Snapshot.Warnings.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

// Mutator is the mutation port a sync run drives. Calls are made for one
// bucket at a time: every AddRule, then every RemoveRule, then one Commit.
type Mutator interface {
	// AddRule stages rule for bucket.
	AddRule(ctx context.Context, bucket string, rule *lifecycle.Rule) error

	// RemoveRule stages the removal of rule from bucket.
	RemoveRule(ctx context.Context, bucket string, rule *lifecycle.Rule) error

	// Commit writes the staged rule collection of bucket to the control
	// plane: a delete when no rules remain, otherwise one put carrying every
	// rule. It returns the mode it used.
	Commit(ctx context.Context, bucket string) (CommitMode, error)
}

// MutatorFactory builds a Mutator staging changes on top of the actual state.
type MutatorFactory func(actual lifecycle.State) Mutator

// Summariser describes the rules of one bucket in prose.
type Summariser interface {
	Summarise(ctx context.Context, c *lifecycle.RuleCollection) (string, error)
}

// Recorder persists run reports.
type Recorder interface {
	Record(ctx context.Context, report *Report) error
}
