package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planJSON bool

// planCmd reports the changes a sync would make.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the lifecycle changes a sync would make",
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

		report, err := svc.Plan(cmd.Context())
		if err != nil {
			return fmt.Errorf("plan aborted: %w", err)
		}
		if planJSON {
			return writeJSON(report)
		}
		printReport(rt.log, report)
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(planCmd)
}
