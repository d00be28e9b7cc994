package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
)

// ParseRange accepts 7d, 30d or 90d, ignoring case and surrounding space.
func ParseRange(raw string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(raw))); r {
	case Range7d, Range30d, Range90d:
		return r, nil
	default:
		return "", fmt.Errorf("invalid range %q (use 7d, 30d, 90d)", raw)
	}
}

// RangeDays returns the window length for r. Unknown ranges use 7 days.
func RangeDays(r Range) int {
	switch r {
	case Range30d:
		return 30
	case Range90d:
		return 90
	default:
		return defaultRangeDays
	}
}

// GranularityForRange buckets 7d by day, 30d by ISO week and 90d by month.
func GranularityForRange(r Range) Granularity {
	switch r {
	case Range30d:
		return GranularityWeek
	case Range90d:
		return GranularityMonth
	default:
		return GranularityDay
	}
}

type SummaryInput struct {
	Range       Range
	Meals       []model.MealLog
	Workouts    []model.WorkoutLog
	BodyMetrics []model.BodyMetric
	Goals       []model.Goal
	// Now anchors the window end. The zero value means time.Now().
	Now    time.Time
	Policy *model.ScoringPolicy
}

type ConsistencyMeta struct {
	FromDate         string `json:"fromDate"`
	ToDate           string `json:"toDate"`
	TotalDays        int    `json:"totalDays"`
	TotalMeals       int    `json:"totalMeals"`
	TotalWorkouts    int    `json:"totalWorkouts"`
	TotalBodyMetrics int    `json:"totalBodyMetrics"`
	ActiveDays       int    `json:"activeDays"`
}

type DashboardSummary struct {
	Range            Range             `json:"range"`
	Granularity      Granularity       `json:"granularity"`
	AdherenceRate    int               `json:"adherenceRate"`
	TotalMeals       int               `json:"totalMeals"`
	TotalWorkouts    int               `json:"totalWorkouts"`
	LatestWeightKg   *float64          `json:"latestWeightKg,omitempty"`
	LatestBodyFatPct *float64          `json:"latestBodyFatPct,omitempty"`
	Daily            []DailyProgress   `json:"daily"`
	Buckets          []DashboardBucket `json:"buckets"`
	Goals            []GoalProgress    `json:"goals"`
	ConsistencyMeta  ConsistencyMeta   `json:"consistencyMeta"`
}

// ComputeDashboardSummary aggregates raw logs into the dashboard for the
// window ending on the UTC date of in.Now. Inputs are never modified.
func ComputeDashboardSummary(in SummaryInput) DashboardSummary {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	rangeKey := in.Range
	switch rangeKey {
	case Range7d, Range30d, Range90d:
	default:
		rangeKey = Range7d
	}
	rangeDays := RangeDays(rangeKey)

	end := utcDay(now)
	start := end.AddDate(0, 0, -(rangeDays - 1))
	startKey, endKey := formatDateKey(start), formatDateKey(end)
	inWindow := func(date string) bool {
		k := dateKey(date)
		return k >= startKey && k <= endKey
	}

	mealsByDay := map[string][]model.MealLog{}
	totalMeals := 0
	for i := range in.Meals {
		if inWindow(in.Meals[i].Date) {
			k := dateKey(in.Meals[i].Date)
			mealsByDay[k] = append(mealsByDay[k], in.Meals[i])
			totalMeals++
		}
	}
	workoutsByDay := map[string][]model.WorkoutLog{}
	windowWorkouts := make([]model.WorkoutLog, 0)
	for i := range in.Workouts {
		if inWindow(in.Workouts[i].Date) {
			k := dateKey(in.Workouts[i].Date)
			workoutsByDay[k] = append(workoutsByDay[k], in.Workouts[i])
			windowWorkouts = append(windowWorkouts, in.Workouts[i])
		}
	}
	metricDays := map[string]bool{}
	totalMetrics := 0
	for i := range in.BodyMetrics {
		if inWindow(in.BodyMetrics[i].Date) {
			metricDays[dateKey(in.BodyMetrics[i].Date)] = true
			totalMetrics++
		}
	}

	keys := windowDateKeys(start, end)
	daily := make([]DailyProgress, 0, len(keys))
	activeDays := 0
	scoreSum := 0
	for _, k := range keys {
		day := ComputeDailyProgress(k, mealsByDay[k], workoutsByDay[k], metricDays[k], in.Policy)
		if day.MealLogCount > 0 || day.WorkoutLogCount > 0 || day.HasBodyMetric {
			activeDays++
		}
		scoreSum += day.OverallScore
		daily = append(daily, day)
	}

	latest := LatestBodyMetric(in.BodyMetrics)
	goals := make([]GoalProgress, 0, len(in.Goals))
	for i := range in.Goals {
		goals = append(goals, ComputeGoalProgress(in.Goals[i], windowWorkouts, latest, rangeDays, endKey))
	}

	granularity := GranularityForRange(rangeKey)
	out := DashboardSummary{
		Range:         rangeKey,
		Granularity:   granularity,
		TotalMeals:    totalMeals,
		TotalWorkouts: len(windowWorkouts),
		Daily:         daily,
		Buckets:       BucketDailyProgress(daily, granularity),
		Goals:         goals,
		ConsistencyMeta: ConsistencyMeta{
			FromDate:         startKey,
			ToDate:           endKey,
			TotalDays:        len(daily),
			TotalMeals:       totalMeals,
			TotalWorkouts:    len(windowWorkouts),
			TotalBodyMetrics: totalMetrics,
			ActiveDays:       activeDays,
		},
	}
	if len(daily) > 0 {
		out.AdherenceRate = roundPercent(float64(scoreSum) / float64(len(daily)))
	}
	if latest != nil {
		out.LatestWeightKg = copyFloat(latest.WeightKg)
		out.LatestBodyFatPct = copyFloat(latest.BodyFatPct)
	}
	return out
}

// LatestBodyMetric returns the metric with the greatest date. Ties go to the
// later CreatedAt, then to the earlier position in metrics. It returns nil
// for an empty slice.
func LatestBodyMetric(metrics []model.BodyMetric) *model.BodyMetric {
	best := -1
	for i := range metrics {
		if best < 0 {
			best = i
			continue
		}
		di, db := dateKey(metrics[i].Date), dateKey(metrics[best].Date)
		if di > db || (di == db && metrics[i].CreatedAt.After(metrics[best].CreatedAt)) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	m := metrics[best]
	m.WeightKg = copyFloat(m.WeightKg)
	m.BodyFatPct = copyFloat(m.BodyFatPct)
	return &m
}
