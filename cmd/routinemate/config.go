package routinemate

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage routinemate local configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetConfig(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			v, ok, err := service.GetConfig(sqldb, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("config %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored configuration and the effective scoring policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(out, "%s\t%s\n", k, cfg[k])
			}

			policy, err := service.ScoringPolicyFromConfig(sqldb, s.Scoring)
			if err != nil {
				return err
			}
			r, err := service.DefaultRangeFromConfig(sqldb, s.DefaultRange)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nEffective")
			fmt.Fprintf(out, "store\t%s\n", s.Store)
			fmt.Fprintf(out, "user\t%s\n", s.UserID)
			fmt.Fprintf(out, "dashboard.default_range\t%s\n", r)
			fmt.Fprintf(out, "scoring\tdiet=%.2f workout=%.2f consistency=%.2f\n", policy.DietWeight, policy.WorkoutWeight, policy.ConsistencyWeight)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
}
