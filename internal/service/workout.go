package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

type WorkoutLogInput struct {
	UserID          string
	Date            string
	BodyPart        string
	Purpose         string
	Tool            string
	ExerciseName    string
	Sets            *int
	Reps            *int
	WeightKg        *float64
	DurationMinutes *int
	Intensity       string
}

func AddWorkoutLog(ctx context.Context, st store.Store, in WorkoutLogInput) (model.WorkoutLog, error) {
	userID, err := requireUser(in.UserID)
	if err != nil {
		return model.WorkoutLog{}, err
	}
	date, err := resolveDate(in.Date)
	if err != nil {
		return model.WorkoutLog{}, err
	}
	name := strings.TrimSpace(in.ExerciseName)
	if name == "" {
		return model.WorkoutLog{}, fmt.Errorf("exercise name is required")
	}
	if err := validatePositiveInt("sets", in.Sets); err != nil {
		return model.WorkoutLog{}, err
	}
	if err := validatePositiveInt("reps", in.Reps); err != nil {
		return model.WorkoutLog{}, err
	}
	if err := validatePositiveInt("duration", in.DurationMinutes); err != nil {
		return model.WorkoutLog{}, err
	}
	if in.WeightKg != nil {
		if err := validateNonNegativeFloat("weight", *in.WeightKg); err != nil {
			return model.WorkoutLog{}, err
		}
	}
	intensity, err := parseIntensity(in.Intensity)
	if err != nil {
		return model.WorkoutLog{}, err
	}

	w := model.WorkoutLog{
		ID:              newID(),
		UserID:          userID,
		Date:            date,
		BodyPart:        normalizeName(in.BodyPart),
		Purpose:         normalizeName(in.Purpose),
		Tool:            normalizeName(in.Tool),
		ExerciseName:    name,
		Sets:            in.Sets,
		Reps:            in.Reps,
		WeightKg:        in.WeightKg,
		DurationMinutes: in.DurationMinutes,
		Intensity:       intensity,
		CreatedAt:       nowFunc().UTC(),
	}
	if err := st.PutWorkout(ctx, w); err != nil {
		return model.WorkoutLog{}, fmt.Errorf("add workout log: %w", err)
	}
	return w, nil
}

func ListWorkoutLogs(ctx context.Context, st store.Store, f ListFilter) ([]model.WorkoutLog, error) {
	userID, sf, err := f.storeFilter()
	if err != nil {
		return nil, err
	}
	items, err := st.ListWorkouts(ctx, userID, sf)
	if err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	return items, nil
}

func DeleteWorkoutLog(ctx context.Context, st store.Store, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("workout log id is required")
	}
	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := st.DeleteWorkout(ctx, userID, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete workout log %s: %w", id, err)
	}
	return nil
}

func parseIntensity(raw string) (model.Intensity, error) {
	switch i := model.Intensity(normalizeName(raw)); i {
	case "":
		return model.IntensityMedium, nil
	case model.IntensityLow, model.IntensityMedium, model.IntensityHigh:
		return i, nil
	default:
		return "", fmt.Errorf("invalid intensity %q (use low, medium or high)", raw)
	}
}
