package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

const exportFormatVersion = 1

// ExportData is a portable snapshot of one user's records. Records keep
// their IDs so importing the same snapshot twice is detectable.
type ExportData struct {
	Version     int                `json:"version"`
	UserID      string             `json:"user_id"`
	Meals       []model.MealLog    `json:"meals"`
	Workouts    []model.WorkoutLog `json:"workouts"`
	BodyMetrics []model.BodyMetric `json:"body_metrics"`
	Goals       []model.Goal       `json:"goals"`
}

type ImportMode string

const (
	ImportModeFail  ImportMode = "fail"
	ImportModeSkip  ImportMode = "skip"
	ImportModeMerge ImportMode = "merge"
)

type ImportOptions struct {
	UserID string
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(ctx context.Context, st store.Store, userID string) (*ExportData, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	out := &ExportData{Version: exportFormatVersion, UserID: userID}
	if out.Meals, err = st.ListMeals(ctx, userID, store.Filter{}); err != nil {
		return nil, fmt.Errorf("export meal logs: %w", err)
	}
	if out.Workouts, err = st.ListWorkouts(ctx, userID, store.Filter{}); err != nil {
		return nil, fmt.Errorf("export workout logs: %w", err)
	}
	if out.BodyMetrics, err = st.ListBodyMetrics(ctx, userID, store.Filter{}); err != nil {
		return nil, fmt.Errorf("export body metrics: %w", err)
	}
	if out.Goals, err = st.ListGoals(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("export goals: %w", err)
	}
	return out, nil
}

// ImportDataSnapshotWithOptions writes data into st under opts.UserID. When
// that differs from the exporting user every record gets a fresh ID, as does
// any record whose ID is already held by another user. Otherwise a record
// whose ID the target user already owns is a conflict: fail aborts, skip
// leaves it, merge overwrites. Fail mode checks every record before writing.
func ImportDataSnapshotWithOptions(ctx context.Context, st store.Store, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	if data.Version > exportFormatVersion {
		return report, fmt.Errorf("unsupported export version %d", data.Version)
	}
	userID := strings.TrimSpace(opts.UserID)
	if userID == "" {
		userID = data.UserID
	}
	userID, err := requireUser(userID)
	if err != nil {
		return report, err
	}
	mode := normalizeImportMode(opts.Mode)
	if mode == "" {
		return report, fmt.Errorf("invalid import mode %q (use fail, skip or merge)", opts.Mode)
	}

	rekey := data.UserID != "" && data.UserID != userID
	records := importRecords(st, data, userID)
	exists := make([]bool, len(records))
	reassigned := 0
	for i := range records {
		r := &records[i]
		if r.id == "" {
			return report, fmt.Errorf("import %s: record id is required", r.label)
		}
		if rekey {
			r.id = newID()
			continue
		}
		owner, err := st.Owner(ctx, r.kind, r.id)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return report, fmt.Errorf("import %s %s: %w", r.label, r.id, err)
		case owner == userID:
			exists[i] = true
			report.Conflicts++
		default:
			r.id = newID()
			reassigned++
		}
	}
	if mode == ImportModeFail && report.Conflicts > 0 {
		return report, fmt.Errorf("import conflicts with %d existing records; use --mode skip or merge", report.Conflicts)
	}

	for i, r := range records {
		switch {
		case exists[i] && mode == ImportModeSkip:
			report.Skipped++
			continue
		case exists[i]:
			report.Updated++
		default:
			report.Inserted++
		}
		if opts.DryRun {
			continue
		}
		if err := r.put(ctx, r.id); err != nil {
			return report, fmt.Errorf("import %s %s: %w", r.label, r.id, err)
		}
	}
	if rekey {
		report.Warnings = append(report.Warnings, fmt.Sprintf("records exported for %q were imported as %q with new ids", data.UserID, userID))
	}
	if reassigned > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d records had ids held by another user and were imported with new ids", reassigned))
	}
	return report, nil
}

func ImportDataSnapshot(ctx context.Context, st store.Store, data *ExportData, userID string) (ImportReport, error) {
	return ImportDataSnapshotWithOptions(ctx, st, data, ImportOptions{UserID: userID, Mode: ImportModeFail})
}

type importRecord struct {
	kind  store.Kind
	label string
	id    string
	put   func(ctx context.Context, id string) error
}

func importRecords(st store.Store, data *ExportData, userID string) []importRecord {
	out := make([]importRecord, 0, len(data.Meals)+len(data.Workouts)+len(data.BodyMetrics)+len(data.Goals))
	for _, m := range data.Meals {
		m.UserID = userID
		out = append(out, importRecord{
			kind: store.KindMeal, label: "meal log", id: m.ID,
			put: func(ctx context.Context, id string) error {
				m.ID = id
				return st.PutMeal(ctx, m)
			},
		})
	}
	for _, w := range data.Workouts {
		w.UserID = userID
		out = append(out, importRecord{
			kind: store.KindWorkout, label: "workout log", id: w.ID,
			put: func(ctx context.Context, id string) error {
				w.ID = id
				return st.PutWorkout(ctx, w)
			},
		})
	}
	for _, b := range data.BodyMetrics {
		b.UserID = userID
		out = append(out, importRecord{
			kind: store.KindBodyMetric, label: "body metric", id: b.ID,
			put: func(ctx context.Context, id string) error {
				b.ID = id
				return st.PutBodyMetric(ctx, b)
			},
		})
	}
	for _, g := range data.Goals {
		g.UserID = userID
		out = append(out, importRecord{
			kind: store.KindGoal, label: "goal", id: g.ID,
			put: func(ctx context.Context, id string) error {
				g.ID = id
				return st.PutGoal(ctx, g)
			},
		})
	}
	return out
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch ImportMode(normalizeName(string(mode))) {
	case "", ImportModeFail:
		return ImportModeFail
	case ImportModeSkip:
		return ImportModeSkip
	case ImportModeMerge:
		return ImportModeMerge
	default:
		return ""
	}
}
