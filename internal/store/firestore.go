package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

const (
	mealLogsCollection    = "mealLogs"
	workoutLogsCollection = "workoutLogs"
	bodyMetricsCollection = "bodyMetrics"
	goalsCollection       = "goals"
)

// Firestore stores each record as a document keyed by its ID. Lists query by
// userId only and filter dates client side, so no composite index is needed.
type Firestore struct {
	client *firestore.Client
}

var _ Store = (*Firestore)(nil)

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// OpenFirestore connects to projectID. FIRESTORE_EMULATOR_HOST is honoured by
// the client library.
func OpenFirestore(ctx context.Context, projectID string) (*Firestore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return NewFirestore(client), nil
}

func (s *Firestore) Close() error { return s.client.Close() }

func (s *Firestore) PutMeal(ctx context.Context, m model.MealLog) error {
	return putDoc(ctx, s.client, mealLogsCollection, m.ID, m.UserID, m)
}

func (s *Firestore) GetMeal(ctx context.Context, userID, id string) (model.MealLog, error) {
	return getOwnedDoc(ctx, s.client, mealLogsCollection, userID, id, func(m model.MealLog) string { return m.UserID })
}

func (s *Firestore) ListMeals(ctx context.Context, userID string, f Filter) ([]model.MealLog, error) {
	items, err := listUserDocs[model.MealLog](ctx, s.client, mealLogsCollection, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.MealLog, 0, len(items))
	for _, m := range items {
		if f.matches(m.Date) {
			out = append(out, m)
		}
	}
	sortMeals(out)
	return limit(out, f.Limit), nil
}

func (s *Firestore) DeleteMeal(ctx context.Context, userID, id string) error {
	if _, err := s.GetMeal(ctx, userID, id); err != nil {
		return err
	}
	return deleteDoc(ctx, s.client, mealLogsCollection, id)
}

func (s *Firestore) PutWorkout(ctx context.Context, w model.WorkoutLog) error {
	return putDoc(ctx, s.client, workoutLogsCollection, w.ID, w.UserID, w)
}

func (s *Firestore) GetWorkout(ctx context.Context, userID, id string) (model.WorkoutLog, error) {
	return getOwnedDoc(ctx, s.client, workoutLogsCollection, userID, id, func(w model.WorkoutLog) string { return w.UserID })
}

func (s *Firestore) ListWorkouts(ctx context.Context, userID string, f Filter) ([]model.WorkoutLog, error) {
	items, err := listUserDocs[model.WorkoutLog](ctx, s.client, workoutLogsCollection, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.WorkoutLog, 0, len(items))
	for _, w := range items {
		if f.matches(w.Date) {
			out = append(out, w)
		}
	}
	sortWorkouts(out)
	return limit(out, f.Limit), nil
}

func (s *Firestore) DeleteWorkout(ctx context.Context, userID, id string) error {
	if _, err := s.GetWorkout(ctx, userID, id); err != nil {
		return err
	}
	return deleteDoc(ctx, s.client, workoutLogsCollection, id)
}

func (s *Firestore) PutBodyMetric(ctx context.Context, m model.BodyMetric) error {
	return putDoc(ctx, s.client, bodyMetricsCollection, m.ID, m.UserID, m)
}

func (s *Firestore) GetBodyMetric(ctx context.Context, userID, id string) (model.BodyMetric, error) {
	return getOwnedDoc(ctx, s.client, bodyMetricsCollection, userID, id, func(m model.BodyMetric) string { return m.UserID })
}

func (s *Firestore) ListBodyMetrics(ctx context.Context, userID string, f Filter) ([]model.BodyMetric, error) {
	items, err := listUserDocs[model.BodyMetric](ctx, s.client, bodyMetricsCollection, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.BodyMetric, 0, len(items))
	for _, m := range items {
		if f.matches(m.Date) {
			out = append(out, m)
		}
	}
	sortBodyMetrics(out)
	return limit(out, f.Limit), nil
}

func (s *Firestore) DeleteBodyMetric(ctx context.Context, userID, id string) error {
	if _, err := s.GetBodyMetric(ctx, userID, id); err != nil {
		return err
	}
	return deleteDoc(ctx, s.client, bodyMetricsCollection, id)
}

func (s *Firestore) PutGoal(ctx context.Context, g model.Goal) error {
	return putDoc(ctx, s.client, goalsCollection, g.ID, g.UserID, g)
}

func (s *Firestore) GetGoal(ctx context.Context, userID, id string) (model.Goal, error) {
	return getOwnedDoc(ctx, s.client, goalsCollection, userID, id, func(g model.Goal) string { return g.UserID })
}

func (s *Firestore) ListGoals(ctx context.Context, userID string, n int) ([]model.Goal, error) {
	items, err := listUserDocs[model.Goal](ctx, s.client, goalsCollection, userID)
	if err != nil {
		return nil, err
	}
	sortGoals(items)
	return limit(items, n), nil
}

func (s *Firestore) DeleteGoal(ctx context.Context, userID, id string) error {
	if _, err := s.GetGoal(ctx, userID, id); err != nil {
		return err
	}
	return deleteDoc(ctx, s.client, goalsCollection, id)
}

// putDoc writes v unless the document already belongs to another user. The
// read and the write share a transaction.
func putDoc(ctx context.Context, client *firestore.Client, collection, id, userID string, v any) error {
	ref := client.Collection(collection).Doc(id)
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil && snap.Exists() {
			owner, err := snap.DataAt("userId")
			if err != nil {
				return err
			}
			if owner != userID {
				return ErrIDTaken
			}
		}
		return tx.Set(ref, v)
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

var kindCollections = map[Kind]string{
	KindMeal:       mealLogsCollection,
	KindWorkout:    workoutLogsCollection,
	KindBodyMetric: bodyMetricsCollection,
	KindGoal:       goalsCollection,
}

func (s *Firestore) Owner(ctx context.Context, kind Kind, id string) (string, error) {
	collection, ok := kindCollections[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	owner, err := snap.DataAt("userId")
	if err != nil {
		return "", fmt.Errorf("read %s/%s owner: %w", collection, id, err)
	}
	userID, _ := owner.(string)
	return userID, nil
}

func getOwnedDoc[T any](ctx context.Context, client *firestore.Client, collection, userID, id string, owner func(T) string) (T, error) {
	var out T
	snap, err := client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if err := snap.DataTo(&out); err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	if owner(out) != userID {
		var zero T
		return zero, ErrNotFound
	}
	return out, nil
}

func listUserDocs[T any](ctx context.Context, client *firestore.Client, collection, userID string) ([]T, error) {
	snaps, err := client.Collection(collection).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var item T
		if err := snap.DataTo(&item); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, snap.Ref.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func deleteDoc(ctx context.Context, client *firestore.Client, collection, id string) error {
	if _, err := client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
