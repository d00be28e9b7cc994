package routinemate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var (
	exportOut    string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current user's records as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := requireArg("--out", exportOut)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			data, err := service.ExportDataSnapshot(ctx, sess.store, sess.settings.UserID)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meals, %d workouts, %d body metrics, %d goals to %s\n",
				len(data.Meals), len(data.Workouts), len(data.BodyMetrics), len(data.Goals), out)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a JSON export into the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := requireArg("--in", importIn)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parse import json: %w", err)
		}
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			report, err := service.ImportDataSnapshotWithOptions(ctx, sess.store, &data, service.ImportOptions{
				UserID: sess.settings.UserID,
				Mode:   service.ImportMode(importMode),
				DryRun: importDryRun,
			})
			if err != nil {
				return err
			}
			prefix := "Imported"
			if importDryRun {
				prefix = "Dry run"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: inserted=%d updated=%d skipped=%d conflicts=%d\n", prefix, report.Inserted, report.Updated, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output JSON file path")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input JSON file path")
	importCmd.Flags().StringVar(&importMode, "mode", "fail", "Conflict mode: fail|skip|merge")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")
}
