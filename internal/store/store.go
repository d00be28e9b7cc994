// Package store persists routine records behind a single Store interface with
// memory, SQLite and Firestore implementations.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrIDTaken is returned by Put when the ID is held by a different user.
	ErrIDTaken = errors.New("record id belongs to another user")
)

// Kind names a record collection for owner lookups.
type Kind string

const (
	KindMeal       Kind = "meal"
	KindWorkout    Kind = "workout"
	KindBodyMetric Kind = "body_metric"
	KindGoal       Kind = "goal"
)

// Filter narrows list results to an inclusive YYYY-MM-DD date range. A zero
// Limit returns every match.
type Filter struct {
	FromDate string
	ToDate   string
	Limit    int
}

func (f Filter) matches(date string) bool {
	if len(date) > 10 {
		date = date[:10]
	}
	if f.FromDate != "" && date < f.FromDate {
		return false
	}
	if f.ToDate != "" && date > f.ToDate {
		return false
	}
	return true
}

// Store is scoped per call by userID; records owned by another user are
// reported as ErrNotFound. Put methods insert, or replace a record the same
// user already owns, and fail with ErrIDTaken otherwise.
type Store interface {
	PutMeal(ctx context.Context, m model.MealLog) error
	GetMeal(ctx context.Context, userID, id string) (model.MealLog, error)
	ListMeals(ctx context.Context, userID string, f Filter) ([]model.MealLog, error)
	DeleteMeal(ctx context.Context, userID, id string) error

	PutWorkout(ctx context.Context, w model.WorkoutLog) error
	GetWorkout(ctx context.Context, userID, id string) (model.WorkoutLog, error)
	ListWorkouts(ctx context.Context, userID string, f Filter) ([]model.WorkoutLog, error)
	DeleteWorkout(ctx context.Context, userID, id string) error

	PutBodyMetric(ctx context.Context, m model.BodyMetric) error
	GetBodyMetric(ctx context.Context, userID, id string) (model.BodyMetric, error)
	ListBodyMetrics(ctx context.Context, userID string, f Filter) ([]model.BodyMetric, error)
	DeleteBodyMetric(ctx context.Context, userID, id string) error

	PutGoal(ctx context.Context, g model.Goal) error
	GetGoal(ctx context.Context, userID, id string) (model.Goal, error)
	ListGoals(ctx context.Context, userID string, limit int) ([]model.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	// Owner returns the user holding id in kind, whoever asks. It returns
	// ErrNotFound when the ID is unused.
	Owner(ctx context.Context, kind Kind, id string) (string, error)

	Close() error
}

func sortMeals(items []model.MealLog) {
	sort.SliceStable(items, func(i, j int) bool {
		return newerFirst(items[i].Date, items[j].Date, items[i].CreatedAt.UnixNano(), items[j].CreatedAt.UnixNano(), items[i].ID, items[j].ID)
	})
}

func sortWorkouts(items []model.WorkoutLog) {
	sort.SliceStable(items, func(i, j int) bool {
		return newerFirst(items[i].Date, items[j].Date, items[i].CreatedAt.UnixNano(), items[j].CreatedAt.UnixNano(), items[i].ID, items[j].ID)
	})
}

func sortBodyMetrics(items []model.BodyMetric) {
	sort.SliceStable(items, func(i, j int) bool {
		return newerFirst(items[i].Date, items[j].Date, items[i].CreatedAt.UnixNano(), items[j].CreatedAt.UnixNano(), items[i].ID, items[j].ID)
	})
}

func sortGoals(items []model.Goal) {
	sort.SliceStable(items, func(i, j int) bool {
		return newerFirst("", "", items[i].CreatedAt.UnixNano(), items[j].CreatedAt.UnixNano(), items[i].ID, items[j].ID)
	})
}

func newerFirst(dateA, dateB string, createdA, createdB int64, idA, idB string) bool {
	if dateA != dateB {
		return dateA > dateB
	}
	if createdA != createdB {
		return createdA > createdB
	}
	return idA < idB
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
