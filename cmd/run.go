package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd runs the workflows listed in LCC_ACTIONS.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured workflows",
	Long: `Runs every workflow listed in LCC_ACTIONS (SYNC, DRYRUN) in order.
A workflow whose loading fails aborts the remaining ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		kinds, err := rt.cfg.Kinds()
		if err != nil {
			return err
		}

		svc, err := rt.workflows(cmd.Context())
		if err != nil {
			return err
		}

		rt.log.Info("Running workflows", zap.Strings("actions", rt.cfg.Actions), zap.String("endpoint", rt.endpoint.String()))
		reports, err := svc.RunAll(cmd.Context(), kinds)
		for _, report := range reports {
			printReport(rt.log, report)
		}
		if err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}
