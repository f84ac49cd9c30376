package reconcile

import (
	"time"

	"lakecircle/core/lifecycle"
)

// Snapshot is one loaded side of a reconciliation.
type Snapshot struct {
	// State maps bucket names to rule collections.
	State lifecycle.State

	// Warnings collects problems that were contained during loading,
	// such as skipped definition files or buckets that could not be queried.
	Warnings []Warning
}

// WarningKind classifies a contained problem.
type WarningKind string

const (
	// WarningDefinition is a definition file that was skipped.
	WarningDefinition WarningKind = "definition"
	// WarningRule is a rule that was skipped or flagged while loading.
	WarningRule WarningKind = "rule"
	// WarningQuery is a bucket whose live state could not be read.
	WarningQuery WarningKind = "query"
	// WarningMutation is a rule that could not be added or removed.
	WarningMutation WarningKind = "mutation"
	// WarningCommit is a bucket whose configuration could not be written.
	WarningCommit WarningKind = "commit"
	// WarningSummary is a bucket whose rules could not be summarised.
	WarningSummary WarningKind = "summary"
)

// Warning is a structured, non-fatal problem surfaced in a run report.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Bucket  string      `json:"bucket,omitempty"`
	Rule    string      `json:"rule,omitempty"`
	Source  string      `json:"source,omitempty"`
	Message string      `json:"message"`
}

// CommitMode is the terminal control-plane call for a bucket.
type CommitMode string

const (
	// CommitNone means no configuration call was issued.
	CommitNone CommitMode = "none"
	// CommitPut replaces the configuration with the full rule list.
	CommitPut CommitMode = "put"
	// CommitDelete removes the configuration because no rules remain.
	CommitDelete CommitMode = "delete"
)

// CommitModeFor returns the commit a bucket holding c needs.
func CommitModeFor(c *lifecycle.RuleCollection) CommitMode {
	if c == nil || c.IsEmpty() {
		return CommitDelete
	}
	return CommitPut
}

// BucketPlan is the planned change for one shared bucket.
type BucketPlan struct {
	// Bucket is the bucket name.
	Bucket string

	// Changes holds the rules to add and remove.
	Changes lifecycle.ChangeSet

	// Actual is the live collection the changes apply to.
	Actual *lifecycle.RuleCollection

	// Commit is the commit the bucket needs once the changes are applied.
	// It is CommitNone when nothing changes.
	Commit CommitMode
}

// Plan holds the per-bucket change sets of one run.
type Plan struct {
	// Buckets holds one entry per shared bucket in lexical order.
	Buckets []BucketPlan

	// Summary provides aggregate counts.
	Summary PlanSummary
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// DesiredBuckets is the number of buckets declared by definitions.
	DesiredBuckets int `json:"desired_buckets"`

	// ActualBuckets is the number of live buckets that were read.
	ActualBuckets int `json:"actual_buckets"`

	// SharedBuckets is the number of buckets present on both sides.
	SharedBuckets int `json:"shared_buckets"`

	// ChangedBuckets is the number of shared buckets with a non-empty change set.
	ChangedBuckets int `json:"changed_buckets"`

	// RulesToAdd counts planned additions.
	RulesToAdd int `json:"rules_to_add"`

	// RulesToRemove counts planned removals.
	RulesToRemove int `json:"rules_to_remove"`
}

// BucketOutcome records what happened to one bucket.
type BucketOutcome struct {
	Bucket string `json:"bucket"`

	// Added and Removed count the rules staged successfully, or planned in a dry run.
	Added   int `json:"added"`
	Removed int `json:"removed"`

	// AddedRules and RemovedRules list the identifiers behind the counts.
	AddedRules   []string `json:"added_rules,omitempty"`
	RemovedRules []string `json:"removed_rules,omitempty"`

	// Commit is the terminal call issued, or planned in a dry run.
	Commit CommitMode `json:"commit"`

	// Committed reports whether the commit call succeeded.
	Committed bool `json:"committed"`

	// Summary is the prose description of a summarise run.
	Summary string `json:"summary,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// RunStatus is the terminal state of a run.
type RunStatus string

const (
	// StatusCompleted means every shared bucket was processed.
	StatusCompleted RunStatus = "Completed"
	// StatusAborted means loading failed and nothing was mutated.
	StatusAborted RunStatus = "Aborted"
)

// Report is the outcome of one run.
type Report struct {
	RunID      string          `json:"run_id"`
	Workflow   Kind            `json:"workflow"`
	Status     RunStatus       `json:"status"`
	Account    string          `json:"account"`
	Region     string          `json:"region"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Summary    PlanSummary     `json:"summary"`
	Outcomes   []BucketOutcome `json:"outcomes"`

	// Warnings holds load-phase warnings. Bucket-scoped apply warnings live
	// on the outcomes.
	Warnings []Warning `json:"warnings,omitempty"`

	// Error is the fatal load error of an aborted run.
	Error string `json:"error,omitempty"`
}

// WarningCount returns the number of warnings across the report.
func (r *Report) WarningCount() int {
	n := len(r.Warnings)
	for _, o := range r.Outcomes {
		n += len(o.Warnings)
	}
	return n
}

// Totals returns the rules added and removed across outcomes.
func (r *Report) Totals() (added, removed int) {
	for _, o := range r.Outcomes {
		added += o.Added
		removed += o.Removed
	}
	return added, removed
}

// AllWarnings returns the load warnings followed by the outcome warnings.
func (r *Report) AllWarnings() []Warning {
	all := make([]Warning, 0, r.WarningCount())
	all = append(all, r.Warnings...)
	for _, o := range r.Outcomes {
		all = append(all, o.Warnings...)
	}
	return all
}
