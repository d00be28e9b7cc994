package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

func TestDashboardUsesActiveGoalOnly(t *testing.T) {
	stepClock(t, time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	for _, mt := range []string{"breakfast", "lunch", "dinner"} {
		if _, err := service.AddMealLog(ctx, st, service.MealLogInput{UserID: "guest", Date: "2026-10-15", MealType: mt, FoodLabel: "rice"}); err != nil {
			t.Fatalf("add %s: %v", mt, err)
		}
	}
	if _, err := service.AddMealLog(ctx, st, service.MealLogInput{UserID: "guest", Date: "2026-09-01", MealType: "lunch", FoodLabel: "old"}); err != nil {
		t.Fatalf("add out-of-window meal: %v", err)
	}
	if _, err := service.AddWorkoutLog(ctx, st, service.WorkoutLogInput{
		UserID: "guest", Date: "2026-10-15", ExerciseName: "run", DurationMinutes: intPtr(45),
	}); err != nil {
		t.Fatalf("add workout: %v", err)
	}
	if _, err := service.AddBodyMetric(ctx, st, service.BodyMetricInput{UserID: "guest", Date: "2026-10-15", Weight: floatPtr(70)}); err != nil {
		t.Fatalf("add body metric: %v", err)
	}
	if _, err := service.SetGoal(ctx, st, service.SetGoalInput{UserID: "guest", WeeklyRoutineTarget: 2}); err != nil {
		t.Fatalf("set old goal: %v", err)
	}
	active, err := service.SetGoal(ctx, st, service.SetGoalInput{UserID: "guest", WeeklyRoutineTarget: 3})
	if err != nil {
		t.Fatalf("set active goal: %v", err)
	}
	if _, err := service.AddMealLog(ctx, st, service.MealLogInput{UserID: "other", Date: "2026-10-14", MealType: "lunch", FoodLabel: "not mine"}); err != nil {
		t.Fatalf("add other user's meal: %v", err)
	}

	summary, err := service.Dashboard(ctx, st, service.DashboardInput{
		UserID: "guest",
		Range:  dashboard.Range7d,
		Now:    time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if summary.TotalMeals != 3 || summary.TotalWorkouts != 1 {
		t.Fatalf("expected 3 meals and 1 workout in window, got %d/%d", summary.TotalMeals, summary.TotalWorkouts)
	}
	if summary.ConsistencyMeta.ActiveDays != 1 {
		t.Fatalf("expected 1 active day, got %d", summary.ConsistencyMeta.ActiveDays)
	}
	last := summary.Daily[len(summary.Daily)-1]
	if last.OverallScore != 100 || last.Status != dashboard.StatusOnTrack {
		t.Fatalf("expected perfect last day, got %+v", last)
	}
	if summary.AdherenceRate != 14 {
		t.Fatalf("expected adherence 14, got %d", summary.AdherenceRate)
	}
	if len(summary.Goals) != 1 || summary.Goals[0].GoalID != active.ID {
		t.Fatalf("expected only the active goal, got %+v", summary.Goals)
	}
	if summary.Goals[0].RoutineCompletionRate != 33 {
		t.Fatalf("expected routine completion 33, got %d", summary.Goals[0].RoutineCompletionRate)
	}
	if summary.LatestWeightKg == nil || *summary.LatestWeightKg != 70 {
		t.Fatalf("expected latest weight 70, got %v", summary.LatestWeightKg)
	}
}

func TestDashboardAppliesScoringPolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	for _, mt := range []string{"breakfast", "lunch", "dinner"} {
		if _, err := service.AddMealLog(ctx, st, service.MealLogInput{UserID: "guest", Date: "2026-10-15", MealType: mt, FoodLabel: "rice"}); err != nil {
			t.Fatalf("add %s: %v", mt, err)
		}
	}

	dietOnly := model.ScoringPolicy{DietWeight: 1}
	summary, err := service.Dashboard(ctx, st, service.DashboardInput{
		UserID: "guest",
		Now:    time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
		Policy: &dietOnly,
	})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if summary.Range != dashboard.Range7d {
		t.Fatalf("expected empty range to fall back to 7d, got %q", summary.Range)
	}
	if got := summary.Daily[len(summary.Daily)-1].OverallScore; got != 100 {
		t.Fatalf("expected diet-only overall 100, got %d", got)
	}
	if len(summary.Goals) != 0 {
		t.Fatalf("expected no goals, got %+v", summary.Goals)
	}
}
