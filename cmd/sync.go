package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"lakecircle/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	yesConfirm bool
)

// syncCmd reconciles live lifecycle rules with the definitions.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile bucket lifecycle rules with the definitions",
	Long: `Plans the changes, asks for confirmation and applies them.

Examples:
  # Plan and apply with interactive confirmation
  lakecircle sync

  # Apply without prompting
  lakecircle sync --yes

  # Plan only
  lakecircle sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, never mutate")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm changes (non-interactive)")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc, err := rt.workflows(ctx)
	if err != nil {
		return err
	}

	rt.log.Info("Planning reconciliation...")
	plan, err := svc.Plan(ctx)
	if err != nil {
		return fmt.Errorf("plan aborted: %w", err)
	}
	printReport(rt.log, plan)

	if plan.Summary.RulesToAdd+plan.Summary.RulesToRemove == 0 {
		rt.log.Info("No changes required.")
		return nil
	}
	if dryRunSync {
		rt.log.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if !confirmChanges(plan) {
		rt.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	rt.log.Info("Applying changes...")
	report, err := svc.Run(ctx, reconcile.KindSync)
	if err != nil {
		return fmt.Errorf("sync aborted: %w", err)
	}
	printReport(rt.log, report)

	added, removed := report.Totals()
	rt.log.Info("Sync completed", zap.Int("added", added), zap.Int("removed", removed), zap.Int("warnings", report.WarningCount()))
	return nil
}

// confirmChanges prompts the user for confirmation or uses the --yes flag.
func confirmChanges(plan *reconcile.Report) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d rule(s) will be added and %d removed across %d bucket(s). Type 'yes' to confirm: ",
		plan.Summary.RulesToAdd, plan.Summary.RulesToRemove, plan.Summary.ChangedBuckets)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
