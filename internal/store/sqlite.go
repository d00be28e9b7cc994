package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

// Fixed-width so created_at sorts chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite stores records in a migrated database opened with db.Open.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// DB exposes the underlying handle for settings stored alongside records.
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) PutMeal(ctx context.Context, m model.MealLog) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO meal_logs(id, user_id, log_date, meal_type, food_label, portion_size, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  log_date=excluded.log_date,
  meal_type=excluded.meal_type,
  food_label=excluded.food_label,
  portion_size=excluded.portion_size,
  created_at=excluded.created_at
WHERE meal_logs.user_id = excluded.user_id
`, m.ID, m.UserID, m.Date, string(m.MealType), m.FoodLabel, string(m.PortionSize), formatTimestamp(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("put meal log %s: %w", m.ID, err)
	}
	return checkPut(res, m.ID)
}

const mealColumns = `id, user_id, log_date, meal_type, food_label, portion_size, created_at`

func scanMeal(row interface{ Scan(...any) error }) (model.MealLog, error) {
	var m model.MealLog
	var mealType, portion, createdRaw string
	if err := row.Scan(&m.ID, &m.UserID, &m.Date, &mealType, &m.FoodLabel, &portion, &createdRaw); err != nil {
		return model.MealLog{}, err
	}
	m.MealType = model.MealType(mealType)
	m.PortionSize = model.PortionSize(portion)
	created, err := parseTimestamp(createdRaw)
	if err != nil {
		return model.MealLog{}, err
	}
	m.CreatedAt = created
	return m, nil
}

func (s *SQLite) GetMeal(ctx context.Context, userID, id string) (model.MealLog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meal_logs WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanMeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.MealLog{}, ErrNotFound
		}
		return model.MealLog{}, fmt.Errorf("get meal log %s: %w", id, err)
	}
	return m, nil
}

func (s *SQLite) ListMeals(ctx context.Context, userID string, f Filter) ([]model.MealLog, error) {
	query, args := listQuery(`SELECT `+mealColumns+` FROM meal_logs`, userID, f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.MealLog, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	return items, nil
}

func (s *SQLite) DeleteMeal(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "meal_logs", "meal log", userID, id)
}

func (s *SQLite) PutWorkout(ctx context.Context, w model.WorkoutLog) error {
	intensity := w.Intensity
	if intensity == "" {
		intensity = model.IntensityMedium
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO workout_logs(id, user_id, log_date, body_part, purpose, tool, exercise_name, sets, reps, weight_kg, duration_minutes, intensity, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  log_date=excluded.log_date,
  body_part=excluded.body_part,
  purpose=excluded.purpose,
  tool=excluded.tool,
  exercise_name=excluded.exercise_name,
  sets=excluded.sets,
  reps=excluded.reps,
  weight_kg=excluded.weight_kg,
  duration_minutes=excluded.duration_minutes,
  intensity=excluded.intensity,
  created_at=excluded.created_at
WHERE workout_logs.user_id = excluded.user_id
`, w.ID, w.UserID, w.Date, w.BodyPart, w.Purpose, w.Tool, w.ExerciseName, w.Sets, w.Reps, w.WeightKg, w.DurationMinutes, string(intensity), formatTimestamp(w.CreatedAt))
	if err != nil {
		return fmt.Errorf("put workout log %s: %w", w.ID, err)
	}
	return checkPut(res, w.ID)
}

const workoutColumns = `id, user_id, log_date, body_part, purpose, tool, exercise_name, sets, reps, weight_kg, duration_minutes, intensity, created_at`

func scanWorkout(row interface{ Scan(...any) error }) (model.WorkoutLog, error) {
	var w model.WorkoutLog
	var sets, reps, duration sql.NullInt64
	var weight sql.NullFloat64
	var intensity, createdRaw string
	if err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.BodyPart, &w.Purpose, &w.Tool, &w.ExerciseName, &sets, &reps, &weight, &duration, &intensity, &createdRaw); err != nil {
		return model.WorkoutLog{}, err
	}
	w.Sets = nullInt(sets)
	w.Reps = nullInt(reps)
	w.DurationMinutes = nullInt(duration)
	w.WeightKg = nullFloat(weight)
	w.Intensity = model.Intensity(intensity)
	created, err := parseTimestamp(createdRaw)
	if err != nil {
		return model.WorkoutLog{}, err
	}
	w.CreatedAt = created
	return w, nil
}

func (s *SQLite) GetWorkout(ctx context.Context, userID, id string) (model.WorkoutLog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workout_logs WHERE id = ? AND user_id = ?`, id, userID)
	w, err := scanWorkout(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.WorkoutLog{}, ErrNotFound
		}
		return model.WorkoutLog{}, fmt.Errorf("get workout log %s: %w", id, err)
	}
	return w, nil
}

func (s *SQLite) ListWorkouts(ctx context.Context, userID string, f Filter) ([]model.WorkoutLog, error) {
	query, args := listQuery(`SELECT `+workoutColumns+` FROM workout_logs`, userID, f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.WorkoutLog, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout log: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout logs: %w", err)
	}
	return items, nil
}

func (s *SQLite) DeleteWorkout(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "workout_logs", "workout log", userID, id)
}

func (s *SQLite) PutBodyMetric(ctx context.Context, m model.BodyMetric) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO body_metrics(id, user_id, log_date, weight_kg, body_fat_pct, created_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  log_date=excluded.log_date,
  weight_kg=excluded.weight_kg,
  body_fat_pct=excluded.body_fat_pct,
  created_at=excluded.created_at
WHERE body_metrics.user_id = excluded.user_id
`, m.ID, m.UserID, m.Date, m.WeightKg, m.BodyFatPct, formatTimestamp(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("put body metric %s: %w", m.ID, err)
	}
	return checkPut(res, m.ID)
}

const bodyMetricColumns = `id, user_id, log_date, weight_kg, body_fat_pct, created_at`

func scanBodyMetric(row interface{ Scan(...any) error }) (model.BodyMetric, error) {
	var m model.BodyMetric
	var weight, bodyFat sql.NullFloat64
	var createdRaw string
	if err := row.Scan(&m.ID, &m.UserID, &m.Date, &weight, &bodyFat, &createdRaw); err != nil {
		return model.BodyMetric{}, err
	}
	m.WeightKg = nullFloat(weight)
	m.BodyFatPct = nullFloat(bodyFat)
	created, err := parseTimestamp(createdRaw)
	if err != nil {
		return model.BodyMetric{}, err
	}
	m.CreatedAt = created
	return m, nil
}

func (s *SQLite) GetBodyMetric(ctx context.Context, userID, id string) (model.BodyMetric, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bodyMetricColumns+` FROM body_metrics WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanBodyMetric(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.BodyMetric{}, ErrNotFound
		}
		return model.BodyMetric{}, fmt.Errorf("get body metric %s: %w", id, err)
	}
	return m, nil
}

func (s *SQLite) ListBodyMetrics(ctx context.Context, userID string, f Filter) ([]model.BodyMetric, error) {
	query, args := listQuery(`SELECT `+bodyMetricColumns+` FROM body_metrics`, userID, f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	defer rows.Close()

	items := make([]model.BodyMetric, 0)
	for rows.Next() {
		m, err := scanBodyMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan body metric: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate body metrics: %w", err)
	}
	return items, nil
}

func (s *SQLite) DeleteBodyMetric(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "body_metrics", "body metric", userID, id)
}

func (s *SQLite) PutGoal(ctx context.Context, g model.Goal) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO goals(id, user_id, d_day, target_weight_kg, target_body_fat, weekly_routine_target, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  d_day=excluded.d_day,
  target_weight_kg=excluded.target_weight_kg,
  target_body_fat=excluded.target_body_fat,
  weekly_routine_target=excluded.weekly_routine_target,
  created_at=excluded.created_at
WHERE goals.user_id = excluded.user_id
`, g.ID, g.UserID, g.DDay, g.TargetWeightKg, g.TargetBodyFat, g.WeeklyRoutineTarget, formatTimestamp(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("put goal %s: %w", g.ID, err)
	}
	return checkPut(res, g.ID)
}

const goalColumns = `id, user_id, d_day, target_weight_kg, target_body_fat, weekly_routine_target, created_at`

func scanGoal(row interface{ Scan(...any) error }) (model.Goal, error) {
	var g model.Goal
	var dday sql.NullString
	var targetWeight, targetFat sql.NullFloat64
	var createdRaw string
	if err := row.Scan(&g.ID, &g.UserID, &dday, &targetWeight, &targetFat, &g.WeeklyRoutineTarget, &createdRaw); err != nil {
		return model.Goal{}, err
	}
	if dday.Valid {
		v := dday.String
		g.DDay = &v
	}
	g.TargetWeightKg = nullFloat(targetWeight)
	g.TargetBodyFat = nullFloat(targetFat)
	created, err := parseTimestamp(createdRaw)
	if err != nil {
		return model.Goal{}, err
	}
	g.CreatedAt = created
	return g, nil
}

func (s *SQLite) GetGoal(ctx context.Context, userID, id string) (model.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Goal{}, ErrNotFound
		}
		return model.Goal{}, fmt.Errorf("get goal %s: %w", id, err)
	}
	return g, nil
}

func (s *SQLite) ListGoals(ctx context.Context, userID string, n int) ([]model.Goal, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT `+goalColumns+`
FROM goals
WHERE user_id = ?
ORDER BY created_at DESC, id ASC
LIMIT ?
`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	items := make([]model.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return items, nil
}

func (s *SQLite) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "goals", "goal", userID, id)
}

// listQuery appends the user, date-range and ordering clauses shared by the
// dated log tables.
func listQuery(base, userID string, f Filter) (string, []any) {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(` WHERE user_id = ?`)
	args := []any{userID}
	if f.FromDate != "" {
		b.WriteString(` AND log_date >= ?`)
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		b.WriteString(` AND log_date <= ?`)
		args = append(args, f.ToDate)
	}
	b.WriteString(` ORDER BY log_date DESC, created_at DESC, id ASC LIMIT ?`)
	n := f.Limit
	if n <= 0 {
		n = -1
	}
	args = append(args, n)
	return b.String(), args
}

// checkPut maps an upsert that touched no row to ErrIDTaken: the ON CONFLICT
// update only applies when the existing row has the same owner.
func checkPut(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("put %s: %w", id, ErrIDTaken)
	}
	return nil
}

var kindTables = map[Kind]string{
	KindMeal:       "meal_logs",
	KindWorkout:    "workout_logs",
	KindBodyMetric: "body_metrics",
	KindGoal:       "goals",
}

func (s *SQLite) Owner(ctx context.Context, kind Kind, id string) (string, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM `+table+` WHERE id = ?`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup %s owner %s: %w", kind, id, err)
	}
	return owner, nil
}

func (s *SQLite) deleteOwned(ctx context.Context, table, noun, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", noun, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse created_at %q: %w", raw, err)
		}
	}
	return t.UTC(), nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
