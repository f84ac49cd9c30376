package cmd

import (
	"fmt"
	"os"

	"lakecircle/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lakecircle",
	Short: "S3 lifecycle rule reconciler",
	Long: `lakecircle keeps the lifecycle rules of S3 buckets in line with
definition files stored under an s3://bucket/prefix endpoint.
It plans, applies and records the changes for one account and region.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
