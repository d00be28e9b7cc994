package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

// Memory keeps records in process memory. Values are copied on the way in and
// out so callers never share pointer fields with the store.
type Memory struct {
	mu       sync.RWMutex
	meals    map[string]model.MealLog
	workouts map[string]model.WorkoutLog
	metrics  map[string]model.BodyMetric
	goals    map[string]model.Goal
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		meals:    map[string]model.MealLog{},
		workouts: map[string]model.WorkoutLog{},
		metrics:  map[string]model.BodyMetric{},
		goals:    map[string]model.Goal{},
	}
}

func (s *Memory) Close() error { return nil }

func (s *Memory) Owner(_ context.Context, kind Kind, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		owner string
		ok    bool
	)
	switch kind {
	case KindMeal:
		var m model.MealLog
		m, ok = s.meals[id]
		owner = m.UserID
	case KindWorkout:
		var w model.WorkoutLog
		w, ok = s.workouts[id]
		owner = w.UserID
	case KindBodyMetric:
		var m model.BodyMetric
		m, ok = s.metrics[id]
		owner = m.UserID
	case KindGoal:
		var g model.Goal
		g, ok = s.goals[id]
		owner = g.UserID
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

func (s *Memory) PutMeal(_ context.Context, m model.MealLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.meals[m.ID]; ok && cur.UserID != m.UserID {
		return ErrIDTaken
	}
	s.meals[m.ID] = m
	return nil
}

func (s *Memory) GetMeal(_ context.Context, userID, id string) (model.MealLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meals[id]
	if !ok || m.UserID != userID {
		return model.MealLog{}, ErrNotFound
	}
	return m, nil
}

func (s *Memory) ListMeals(_ context.Context, userID string, f Filter) ([]model.MealLog, error) {
	s.mu.RLock()
	items := make([]model.MealLog, 0)
	for _, m := range s.meals {
		if m.UserID == userID && f.matches(m.Date) {
			items = append(items, m)
		}
	}
	s.mu.RUnlock()
	sortMeals(items)
	return limit(items, f.Limit), nil
}

func (s *Memory) DeleteMeal(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.meals[id]; !ok || m.UserID != userID {
		return ErrNotFound
	}
	delete(s.meals, id)
	return nil
}

func (s *Memory) PutWorkout(_ context.Context, w model.WorkoutLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.workouts[w.ID]; ok && cur.UserID != w.UserID {
		return ErrIDTaken
	}
	s.workouts[w.ID] = cloneWorkout(w)
	return nil
}

func (s *Memory) GetWorkout(_ context.Context, userID, id string) (model.WorkoutLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workouts[id]
	if !ok || w.UserID != userID {
		return model.WorkoutLog{}, ErrNotFound
	}
	return cloneWorkout(w), nil
}

func (s *Memory) ListWorkouts(_ context.Context, userID string, f Filter) ([]model.WorkoutLog, error) {
	s.mu.RLock()
	items := make([]model.WorkoutLog, 0)
	for _, w := range s.workouts {
		if w.UserID == userID && f.matches(w.Date) {
			items = append(items, cloneWorkout(w))
		}
	}
	s.mu.RUnlock()
	sortWorkouts(items)
	return limit(items, f.Limit), nil
}

func (s *Memory) DeleteWorkout(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workouts[id]; !ok || w.UserID != userID {
		return ErrNotFound
	}
	delete(s.workouts, id)
	return nil
}

func (s *Memory) PutBodyMetric(_ context.Context, m model.BodyMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.metrics[m.ID]; ok && cur.UserID != m.UserID {
		return ErrIDTaken
	}
	s.metrics[m.ID] = cloneBodyMetric(m)
	return nil
}

func (s *Memory) GetBodyMetric(_ context.Context, userID, id string) (model.BodyMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[id]
	if !ok || m.UserID != userID {
		return model.BodyMetric{}, ErrNotFound
	}
	return cloneBodyMetric(m), nil
}

func (s *Memory) ListBodyMetrics(_ context.Context, userID string, f Filter) ([]model.BodyMetric, error) {
	s.mu.RLock()
	items := make([]model.BodyMetric, 0)
	for _, m := range s.metrics {
		if m.UserID == userID && f.matches(m.Date) {
			items = append(items, cloneBodyMetric(m))
		}
	}
	s.mu.RUnlock()
	sortBodyMetrics(items)
	return limit(items, f.Limit), nil
}

func (s *Memory) DeleteBodyMetric(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.metrics[id]; !ok || m.UserID != userID {
		return ErrNotFound
	}
	delete(s.metrics, id)
	return nil
}

func (s *Memory) PutGoal(_ context.Context, g model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.goals[g.ID]; ok && cur.UserID != g.UserID {
		return ErrIDTaken
	}
	s.goals[g.ID] = cloneGoal(g)
	return nil
}

func (s *Memory) GetGoal(_ context.Context, userID, id string) (model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return model.Goal{}, ErrNotFound
	}
	return cloneGoal(g), nil
}

func (s *Memory) ListGoals(_ context.Context, userID string, n int) ([]model.Goal, error) {
	s.mu.RLock()
	items := make([]model.Goal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			items = append(items, cloneGoal(g))
		}
	}
	s.mu.RUnlock()
	sortGoals(items)
	return limit(items, n), nil
}

func (s *Memory) DeleteGoal(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.goals[id]; !ok || g.UserID != userID {
		return ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

func cloneWorkout(w model.WorkoutLog) model.WorkoutLog {
	w.Sets = cloneInt(w.Sets)
	w.Reps = cloneInt(w.Reps)
	w.WeightKg = cloneFloat(w.WeightKg)
	w.DurationMinutes = cloneInt(w.DurationMinutes)
	return w
}

func cloneBodyMetric(m model.BodyMetric) model.BodyMetric {
	m.WeightKg = cloneFloat(m.WeightKg)
	m.BodyFatPct = cloneFloat(m.BodyFatPct)
	return m
}

func cloneGoal(g model.Goal) model.Goal {
	g.TargetWeightKg = cloneFloat(g.TargetWeightKg)
	g.TargetBodyFat = cloneFloat(g.TargetBodyFat)
	if g.DDay != nil {
		v := *g.DDay
		g.DDay = &v
	}
	return g
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
