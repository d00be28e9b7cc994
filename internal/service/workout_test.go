package service_test

import (
	"context"
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

func TestWorkoutLogDefaultsAndNormalization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	w, err := service.AddWorkoutLog(ctx, st, service.WorkoutLogInput{
		UserID:       "guest",
		Date:         "2026-10-15",
		BodyPart:     " Legs ",
		Purpose:      "Strength",
		Tool:         "Barbell",
		ExerciseName: "Back Squat",
		Sets:         intPtr(5),
		Reps:         intPtr(5),
		WeightKg:     floatPtr(100),
	})
	if err != nil {
		t.Fatalf("add workout log: %v", err)
	}
	if w.Intensity != model.IntensityMedium {
		t.Fatalf("expected default intensity medium, got %q", w.Intensity)
	}
	if w.BodyPart != "legs" || w.Tool != "barbell" {
		t.Fatalf("expected lowercased taxonomy, got %+v", w)
	}
	if w.ExerciseName != "Back Squat" {
		t.Fatalf("expected exercise name to keep its case, got %q", w.ExerciseName)
	}

	items, err := service.ListWorkoutLogs(ctx, st, service.ListFilter{UserID: "guest", FromDate: "2026-10-15"})
	if err != nil {
		t.Fatalf("list workout logs: %v", err)
	}
	if len(items) != 1 || items[0].DurationMinutes != nil || items[0].Duration() != model.DefaultWorkoutMinutes {
		t.Fatalf("expected one workout with default duration, got %+v", items)
	}

	if err := service.DeleteWorkoutLog(ctx, st, "guest", w.ID); err != nil {
		t.Fatalf("delete workout log: %v", err)
	}
}

func TestWorkoutLogValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()

	base := service.WorkoutLogInput{UserID: "guest", Date: "2026-10-15", ExerciseName: "run"}
	cases := map[string]func(in *service.WorkoutLogInput){
		"missing name":  func(in *service.WorkoutLogInput) { in.ExerciseName = "" },
		"zero sets":     func(in *service.WorkoutLogInput) { in.Sets = intPtr(0) },
		"zero reps":     func(in *service.WorkoutLogInput) { in.Reps = intPtr(0) },
		"zero duration": func(in *service.WorkoutLogInput) { in.DurationMinutes = intPtr(0) },
		"negative load": func(in *service.WorkoutLogInput) { in.WeightKg = floatPtr(-1) },
		"bad intensity": func(in *service.WorkoutLogInput) { in.Intensity = "extreme" },
	}
	for name, mutate := range cases {
		in := base
		mutate(&in)
		if _, err := service.AddWorkoutLog(ctx, st, in); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
