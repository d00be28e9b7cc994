package routinemate

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local routinemate database",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			version, err := db.SchemaVersion(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized routinemate database at %s (schema v%d)\n", s.DBPath, version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
