package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

func TestActiveGoalIsMostRecentlyCreated(t *testing.T) {
	stepClock(t, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	none, err := service.ActiveGoal(ctx, st, "guest")
	if err != nil {
		t.Fatalf("active goal before any set: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no active goal, got %+v", none)
	}

	if _, err := service.SetGoal(ctx, st, service.SetGoalInput{UserID: "guest", WeeklyRoutineTarget: 3}); err != nil {
		t.Fatalf("set first goal: %v", err)
	}
	second, err := service.SetGoal(ctx, st, service.SetGoalInput{
		UserID:              "guest",
		WeeklyRoutineTarget: 5,
		DDay:                "2026-12-31",
		TargetWeight:        floatPtr(150),
		Unit:                "lb",
		TargetBodyFat:       floatPtr(15),
	})
	if err != nil {
		t.Fatalf("set second goal: %v", err)
	}

	active, err := service.ActiveGoal(ctx, st, "guest")
	if err != nil {
		t.Fatalf("active goal: %v", err)
	}
	if active == nil || active.ID != second.ID || active.WeeklyRoutineTarget != 5 {
		t.Fatalf("expected second goal active, got %+v", active)
	}
	if active.TargetWeightKg == nil || *active.TargetWeightKg < 68 || *active.TargetWeightKg > 68.1 {
		t.Fatalf("expected target weight around 68.04kg, got %v", active.TargetWeightKg)
	}
	if active.DDay == nil || *active.DDay != "2026-12-31" {
		t.Fatalf("expected d-day 2026-12-31, got %v", active.DDay)
	}

	history, err := service.ListGoals(ctx, st, "guest", 0)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(history) != 2 || history[1].WeeklyRoutineTarget != 3 {
		t.Fatalf("expected two goals newest first, got %+v", history)
	}
}

func TestSetGoalValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	cases := []service.SetGoalInput{
		{UserID: "guest", WeeklyRoutineTarget: 0},
		{UserID: "guest", WeeklyRoutineTarget: 3, DDay: "2026-13-01"},
		{UserID: "guest", WeeklyRoutineTarget: 3, TargetBodyFat: floatPtr(101)},
		{UserID: "guest", WeeklyRoutineTarget: 3, TargetWeight: floatPtr(-70)},
	}
	for _, in := range cases {
		if _, err := service.SetGoal(ctx, st, in); err == nil {
			t.Fatalf("expected validation error for %+v", in)
		}
	}
}
