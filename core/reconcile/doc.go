// Package reconcile drives lifecycle reconciliation between a desired state
// declared in definition files and the actual state read from live buckets.
//
// The engine is one-way: definitions are the source of truth and live buckets
// are corrected toward them.
//
// # Architecture
//
// The reconcile system consists of four parts:
//
// 1. Loading: two LoadFunc values produce the desired and actual Snapshots.
// They run concurrently and share no mutable state. A load error aborts the
// run before anything is mutated; contained problems (a skipped file, a
// bucket that could not be queried) travel as Warnings.
//
// 2. Planning: BuildPlan intersects both bucket sets and diffs every shared
// bucket into a ChangeSet. Buckets present on one side only are ignored.
//
// 3. Applying: Apply walks shared buckets in lexical order and calls the
// Mutator for every addition, then every removal, then exactly one Commit.
// A failed call is recorded as a warning on the bucket outcome and the loop
// continues. Buckets without changes get no calls at all.
//
// 4. Workflows: a Kind (SYNC, DRYRUN, SUMMARISE) selects the Workflow that
// turns loaded state into outcomes. DRYRUN simulates the commit each bucket
// would need. SUMMARISE ignores the plan and asks the Summariser to describe
// every live bucket holding rules.
//
// # Commit Modes
//
// The control plane treats "no lifecycle configuration" and "configuration
// with zero rules" differently and rejects a put with an empty rule list. A
// bucket left without rules is therefore committed with a delete, any other
// bucket with a single put carrying every surviving rule.
//
// # Caching
//
// SnapshotCache serves repeated dry runs from recently loaded state, with
// singleflight protection against concurrent loads. Mutating runs always
// reload.
//
// # Usage Example
//
//	r := &reconcile.Reconciler{
//	    Account:  "123456789012",
//	    Region:   "eu-west-1",
//	    Desired:  definitions,
//	    Actual:   resources,
//	    Mutators: resource.MutatorFactory(api, account, log),
//	    Logger:   log,
//	}
//	report, err := r.Run(ctx, reconcile.KindSync)
package reconcile
