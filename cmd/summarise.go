package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summariseJSON bool

// summariseCmd describes the live lifecycle rules of every bucket.
var summariseCmd = &cobra.Command{
	Use:     "summarise",
	Aliases: []string{"summarize"},
	Short:   "Describe the live lifecycle rules of every bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		svc, err := rt.workflows(cmd.Context())
		if err != nil {
			return err
		}

		report, err := svc.Summarise(cmd.Context())
		if err != nil {
			return fmt.Errorf("summary aborted: %w", err)
		}
		if summariseJSON {
			return writeJSON(report)
		}
		printReport(rt.log, report)
		return nil
	},
}

func init() {
	summariseCmd.Flags().BoolVar(&summariseJSON, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(summariseCmd)
}
