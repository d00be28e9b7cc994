package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	seedRoutine(t, store.NewSQLite(sqldb), "guest")

	dir := t.TempDir()
	info, err := service.CreateBackup(sqldb, filepath.Join(dir, "routinemate-1.db"))
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("expected checksum and size, got %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, info.Path); err == nil {
		t.Fatalf("expected error overwriting an existing backup")
	}

	backups, err := service.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 1 || backups[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups %+v", backups)
	}

	target := filepath.Join(t.TempDir(), "restored.db")
	if err := service.RestoreBackup(info.Path, target, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if err := service.RestoreBackup(info.Path, target, false); err == nil {
		t.Fatalf("expected restore to refuse an existing db without force")
	}

	restored := openExisting(t, target)
	defer restored.Close()
	meals, err := service.ListMealLogs(ctx, store.NewSQLite(restored), service.ListFilter{UserID: "guest"})
	if err != nil || len(meals) != 1 {
		t.Fatalf("expected restored meal, got %d (%v)", len(meals), err)
	}
}

func TestRestoreBackupDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	path := filepath.Join(t.TempDir(), "routinemate.db")
	if _, err := service.CreateBackup(sqldb, path); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(path+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("corrupt checksum: %v", err)
	}
	if err := service.RestoreBackup(path, filepath.Join(t.TempDir(), "out.db"), false); err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}

func TestDoctorFindsAndRemovesDuplicateMeals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	st := store.NewSQLite(sqldb)

	for i := 0; i < 3; i++ {
		if _, err := service.AddMealLog(ctx, st, service.MealLogInput{UserID: "guest", Date: "2026-10-15", MealType: "lunch", FoodLabel: "Rice"}); err != nil {
			t.Fatalf("add meal: %v", err)
		}
	}
	if _, err := sqldb.Exec(`UPDATE meal_logs SET log_date = '15/10/2026' WHERE rowid = (SELECT MIN(rowid) FROM meal_logs)`); err != nil {
		t.Fatalf("corrupt date: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("run doctor: %v", err)
	}
	if report.SchemaVersion != 3 || report.InvalidDateRows != 1 || report.DuplicateMealRows != 1 {
		t.Fatalf("unexpected doctor report %+v", report)
	}

	report, err = service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("run doctor fix: %v", err)
	}
	if report.RemovedDuplicates != 1 {
		t.Fatalf("expected 1 duplicate removed, got %+v", report)
	}
	var remaining int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM meal_logs`).Scan(&remaining); err != nil {
		t.Fatalf("count meals: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("expected 2 meal rows after fix, got %d", remaining)
	}
}
