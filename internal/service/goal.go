package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

type SetGoalInput struct {
	UserID              string
	DDay                string
	TargetWeight        *float64
	Unit                string
	TargetBodyFat       *float64
	WeeklyRoutineTarget int
}

// SetGoal records a new goal. Earlier goals are kept as history; the most
// recently created one is active.
func SetGoal(ctx context.Context, st store.Store, in SetGoalInput) (model.Goal, error) {
	userID, err := requireUser(in.UserID)
	if err != nil {
		return model.Goal{}, err
	}
	if in.WeeklyRoutineTarget < 1 {
		return model.Goal{}, fmt.Errorf("weekly routine target must be >= 1")
	}
	g := model.Goal{
		ID:                  newID(),
		UserID:              userID,
		WeeklyRoutineTarget: in.WeeklyRoutineTarget,
		CreatedAt:           nowFunc().UTC(),
	}
	if dday := strings.TrimSpace(in.DDay); dday != "" {
		if err := validateOptionalDate("d-day", dday); err != nil {
			return model.Goal{}, err
		}
		g.DDay = &dday
	}
	if in.TargetWeight != nil {
		kg, err := convertWeightToKg(*in.TargetWeight, in.Unit)
		if err != nil {
			return model.Goal{}, fmt.Errorf("target %w", err)
		}
		g.TargetWeightKg = &kg
	}
	if in.TargetBodyFat != nil {
		if err := validateBodyFat(*in.TargetBodyFat); err != nil {
			return model.Goal{}, err
		}
		v := *in.TargetBodyFat
		g.TargetBodyFat = &v
	}
	if err := st.PutGoal(ctx, g); err != nil {
		return model.Goal{}, fmt.Errorf("set goal: %w", err)
	}
	return g, nil
}

// ActiveGoal returns the user's most recently created goal, or nil when none
// has been set.
func ActiveGoal(ctx context.Context, st store.Store, userID string) (*model.Goal, error) {
	goals, err := ListGoals(ctx, st, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}
	return &goals[0], nil
}

func ListGoals(ctx context.Context, st store.Store, userID string, limit int) ([]model.Goal, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	goals, err := st.ListGoals(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func DeleteGoal(ctx context.Context, st store.Store, userID, id string) error {
	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := st.DeleteGoal(ctx, userID, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	return nil
}
