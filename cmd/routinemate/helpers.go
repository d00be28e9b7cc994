package routinemate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/app"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/config"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/db"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

func loadSettings() (config.Settings, error) {
	s, err := config.Resolve(config.Flags{DBPath: dbPath, UserID: userFlag, ConfigPath: configPath}, os.Getenv)
	if err != nil {
		return config.Settings{}, err
	}
	logger.Debug("settings resolved", "store", s.Store, "db", s.DBPath, "user", s.UserID, "config", s.ConfigPath)
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	if err := app.EnsureDBDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func withDB(run func(*sql.DB) error) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	sqldb, err := openDB(s.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

// session bundles what record commands need. db is the local SQLite
// database, which holds app_config whichever store backs the records.
type session struct {
	settings config.Settings
	db       *sql.DB
	store    store.Store
}

func withSession(cmd *cobra.Command, run func(ctx context.Context, sess *session) error) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	sqldb, err := openDB(s.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess := &session{settings: s, db: sqldb}
	switch s.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store; records are discarded on exit")
		sess.store = store.NewMemory()
	case config.StoreFirestore:
		fs, err := store.OpenFirestore(ctx, s.FirestoreProject)
		if err != nil {
			return err
		}
		defer fs.Close()
		sess.store = fs
	default:
		sess.store = store.NewSQLite(sqldb)
	}
	logger.Debug("store selected", "kind", s.Store)
	return run(ctx, sess)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(service.NewEnvelope(v), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// jsonFailure writes err as an error envelope on stdout when asJSON is set.
// The error is still returned so the exit status is non-zero.
func jsonFailure(cmd *cobra.Command, asJSON bool, err error) error {
	if err == nil || !asJSON {
		return err
	}
	b, mErr := json.MarshalIndent(service.NewErrorEnvelope(err, nil), "", "  ")
	if mErr == nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	}
	return err
}

func requireArg(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

func optionalInt(cmd *cobra.Command, flag string, v int) *int {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func optionalFloat(cmd *cobra.Command, flag string, v float64) *float64 {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func formatOptionalFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
