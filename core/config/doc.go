// Package config provides configuration management for lakecircle.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Every variable carries the LCC_ prefix; nested keys
// are joined with underscores (aws.region is LCC_AWS_REGION). Defaults come
// from the `default` struct tags of each partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Endpoint: s3://bucket/prefix holding definitions and run reports
//   - Actions: workflows run in order (SYNC, DRYRUN)
//   - AWS: account, region and credentials of the reconciled buckets
//   - Storage: endpoint storage connection settings
//   - Log: Logging level and format
//   - Server: HTTP server settings (port, API key, plan cache)
//   - Database: optional run history connection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
