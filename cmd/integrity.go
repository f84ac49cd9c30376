package cmd

import (
	"lakecircle/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the endpoint layout, definitions and history schema",
	Long: `Checks that the endpoint bucket carries the layout folders, that every
definition file parses and, when a history database is attached, that its
tables carry the expected columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		svc := integrity.NewService(rt.store, rt.endpoint, rt.log, rt.db)

		rt.log.Info("Checking folder structure...", zap.String("endpoint", rt.endpoint.String()))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			rt.log.Info("Structure is intact.")
		} else {
			rt.log.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fixFlag {
				rt.log.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				rt.log.Info("Structure fixed successfully.")
			} else {
				rt.log.Info("Run with --fix to create missing folders.")
			}
		}

		rt.log.Info("Checking definition files...")
		defs, err := svc.CheckDefinitions(ctx)
		if err != nil {
			return err
		}
		rt.log.Info("Definitions loaded", zap.Int("buckets", defs.Buckets), zap.Int("rules", defs.Rules))
		for _, w := range defs.Warnings {
			rt.log.Warn("Definition problem",
				zap.String("kind", string(w.Kind)),
				zap.String("source", w.Source),
				zap.String("rule", w.Rule),
				zap.String("message", w.Message),
			)
		}

		if svc.HasDatabase() {
			rt.log.Info("Checking history schema...")
			report, err := svc.CheckSchema()
			if err != nil {
				return err
			}
			if report.Matched {
				rt.log.Info("History schema matches the run store.")
			} else {
				for table, tbl := range report.Tables {
					if len(tbl.MissingColumns) > 0 {
						rt.log.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
					}
				}
				for _, e := range report.Errors {
					rt.log.Error("Inspection Error", zap.String("error", e))
				}
			}
		}

		return nil
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing layout folders")
	RootCmd.AddCommand(integrityCmd)
}
