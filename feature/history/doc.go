// Package history keeps the reports of past runs.
//
// Two reconcile.Recorder implementations are provided. Archive writes each
// report as JSON to log/<yyyy>/<mm>/<dd>/<run-id>.json below the endpoint.
// Store persists runs and their bucket outcomes with GORM when the database
// is enabled, and lists them for the HTTP API.
package history
