package routinemate

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks on the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", report.SchemaVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid date rows: %d\n", report.InvalidDateRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicate meal rows: %d\n", report.DuplicateMealRows)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed duplicates: %d\n", report.RemovedDuplicates)
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.InvalidDateRows > 0 || report.DuplicateMealRows > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove duplicate meal rows")
}
