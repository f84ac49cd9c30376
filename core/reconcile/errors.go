package reconcile

import (
	"errors"
	"fmt"

	"lakecircle/core/lifecycle"
)

// Operation names a mutation port call.
type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
	OpCommit Operation = "commit"
)

// MutationError reports a failed mutation port call for one bucket.
type MutationError struct {
	Bucket string
	// Rule is the rule identifier, empty for commits.
	Rule string
	Op   Operation
	Err  error
}

func (e *MutationError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("%s rule %q on %s: %v", e.Op, e.Rule, e.Bucket, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// QueryError reports a bucket whose live lifecycle configuration could not be read.
type QueryError struct {
	Bucket string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Bucket, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// NewWarning converts a contained error into a report warning. The kind and
// scope are taken from the error type when it carries them.
func NewWarning(kind WarningKind, source string, err error) Warning {
	w := Warning{Kind: kind, Source: source, Message: err.Error()}

	var (
		mutErr   *MutationError
		queryErr *QueryError
		valErr   *lifecycle.ValidationError
	)
	switch {
	case errors.As(err, &mutErr):
		w.Bucket = mutErr.Bucket
		w.Rule = mutErr.Rule
		w.Kind = WarningMutation
		if mutErr.Op == OpCommit {
			w.Kind = WarningCommit
		}
	case errors.As(err, &queryErr):
		w.Bucket = queryErr.Bucket
		w.Kind = WarningQuery
	case errors.As(err, &valErr):
		w.Rule = valErr.Rule
	}
	return w
}
