package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/db"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routinemate.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func openExisting(t *testing.T, path string) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db %s: %v", path, err)
	}
	return sqldb
}

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	return store.NewSQLite(newTestDB(t))
}

// stepClock makes each service call observe a time one minute after the last.
func stepClock(t *testing.T, start time.Time) {
	t.Helper()
	current := start
	restore := service.SetNowForTest(func() time.Time {
		current = current.Add(time.Minute)
		return current
	})
	t.Cleanup(restore)
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
