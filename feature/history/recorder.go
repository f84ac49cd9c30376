package history

import (
	"context"
	"errors"

	"lakecircle/core/reconcile"
)

// Recorders fans a report out to every recorder. Each recorder is tried and
// the failures are joined.
type Recorders []reconcile.Recorder

func (rs Recorders) Record(ctx context.Context, report *reconcile.Report) error {
	var errs []error
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
