// Package workflow runs reconciliation workflows and serves them over HTTP.
//
// The Service wraps a reconcile.Reconciler. Every run it executes is handed
// to the configured recorder (report archive, run history). Concurrent sync
// requests share one execution, so two mutating runs never overlap inside
// one process. Plans are dry runs served from the snapshot cache.
//
// # HTTP Endpoints
//
//   - GET /lifecycle/plan : Dry run of the current definitions.
//   - POST /lifecycle/sync : Reconcile and mutate live buckets.
//   - GET /lifecycle/runs : Recent runs from the history database (supports ?limit=).
package workflow
