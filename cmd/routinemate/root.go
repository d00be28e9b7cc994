package routinemate

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/config"
)

var (
	dbPath     string
	userFlag   string
	configPath string
	verbose    bool
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var rootCmd = &cobra.Command{
	Use:           "routinemate",
	Short:         "routinemate tracks meals, workouts and body metrics against your routine goals",
	Long:          "routinemate is a local-first routine tracker that scores each day from logged meals, workouts and body metrics and summarizes adherence over 7, 30 or 90 days.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		if err := config.LoadDotEnv(""); err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env ROUTINEMATE_DB)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User id to read and write records for (env ROUTINEMATE_USER, default guest)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}
