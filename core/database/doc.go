// Package database handles the optional run history database.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration, and schema inspection helpers used by the
// integrity check to confirm the history tables carry the expected columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "lifecycle_runs", []string{"run_id", "status"})
package database
