package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	routinedb "github.com/Stendhalsynd/RoutineMate-sub000/internal/db"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	SchemaVersion     int `json:"schema_version"`
	InvalidDateRows   int `json:"invalid_date_rows"`
	DuplicateMealRows int `json:"duplicate_meal_rows"`
	RemovedDuplicates int `json:"removed_duplicates,omitempty"`
}

// CreateBackup writes a consistent copy of the open database to outPath with
// VACUUM INTO, plus a .sha256 sidecar.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	checksumFile := backupPath + ".sha256"
	if expected, err := os.ReadFile(checksumFile); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

const dateGlob = `'[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`

// RunDoctor reports rows whose dates are not YYYY-MM-DD and meal logs that
// repeat the same user, day, meal type and food. With fix, duplicate meals
// are removed keeping the earliest created row.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	version, err := routinedb.SchemaVersion(db)
	if err != nil {
		return report, fmt.Errorf("doctor: %w", err)
	}
	report.SchemaVersion = version

	for _, table := range []string{"meal_logs", "workout_logs", "body_metrics"} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(1) FROM ` + table + ` WHERE log_date NOT GLOB ` + dateGlob).Scan(&n); err != nil {
			return report, fmt.Errorf("doctor date check %s: %w", table, err)
		}
		report.InvalidDateRows += n
	}
	var badDDay int
	if err := db.QueryRow(`SELECT COUNT(1) FROM goals WHERE d_day IS NOT NULL AND d_day NOT GLOB ` + dateGlob).Scan(&badDDay); err != nil {
		return report, fmt.Errorf("doctor date check goals: %w", err)
	}
	report.InvalidDateRows += badDDay

	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM meal_logs
  GROUP BY user_id, log_date, meal_type, lower(food_label)
  HAVING cnt > 1
)
`).Scan(&report.DuplicateMealRows); err != nil {
		return report, fmt.Errorf("doctor duplicate query: %w", err)
	}

	if fix && report.DuplicateMealRows > 0 {
		res, err := db.Exec(`
DELETE FROM meal_logs
WHERE id NOT IN (
  SELECT id FROM (
    SELECT id, ROW_NUMBER() OVER (
      PARTITION BY user_id, log_date, meal_type, lower(food_label)
      ORDER BY created_at ASC, id ASC
    ) AS rn
    FROM meal_logs
  ) WHERE rn = 1
)
`)
		if err != nil {
			return report, fmt.Errorf("doctor remove duplicates: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return report, fmt.Errorf("doctor remove duplicates: %w", err)
		}
		report.RemovedDuplicates = int(n)
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
