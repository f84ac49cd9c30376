// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the listening port, the API key protecting every route but /health, and
// the lifetime of the cached plan served by GET /lifecycle/plan.
package server
