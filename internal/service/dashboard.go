package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

type DashboardInput struct {
	UserID string
	Range  dashboard.Range
	// Now anchors the window end; zero means the current time.
	Now    time.Time
	Policy *model.ScoringPolicy
}

// Dashboard loads the user's records and computes the summary. Only the
// active goal is reported.
func Dashboard(ctx context.Context, st store.Store, in DashboardInput) (*dashboard.DashboardSummary, error) {
	userID, err := requireUser(in.UserID)
	if err != nil {
		return nil, err
	}
	meals, err := st.ListMeals(ctx, userID, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load meal logs: %w", err)
	}
	workouts, err := st.ListWorkouts(ctx, userID, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load workout logs: %w", err)
	}
	metrics, err := st.ListBodyMetrics(ctx, userID, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load body metrics: %w", err)
	}
	goal, err := ActiveGoal(ctx, st, userID)
	if err != nil {
		return nil, err
	}
	var goals []model.Goal
	if goal != nil {
		goals = []model.Goal{*goal}
	}

	now := in.Now
	if now.IsZero() {
		now = nowFunc()
	}
	summary := dashboard.ComputeDashboardSummary(dashboard.SummaryInput{
		Range:       in.Range,
		Meals:       meals,
		Workouts:    workouts,
		BodyMetrics: metrics,
		Goals:       goals,
		Now:         now,
		Policy:      in.Policy,
	})
	return &summary, nil
}
