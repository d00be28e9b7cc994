package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

type MealLogInput struct {
	UserID      string
	Date        string
	MealType    string
	FoodLabel   string
	PortionSize string
}

func AddMealLog(ctx context.Context, st store.Store, in MealLogInput) (model.MealLog, error) {
	userID, err := requireUser(in.UserID)
	if err != nil {
		return model.MealLog{}, err
	}
	date, err := resolveDate(in.Date)
	if err != nil {
		return model.MealLog{}, err
	}
	mealType, err := parseMealType(in.MealType)
	if err != nil {
		return model.MealLog{}, err
	}
	portion, err := parsePortionSize(in.PortionSize)
	if err != nil {
		return model.MealLog{}, err
	}
	label := strings.TrimSpace(in.FoodLabel)
	if label == "" {
		return model.MealLog{}, fmt.Errorf("food label is required")
	}

	m := model.MealLog{
		ID:          newID(),
		UserID:      userID,
		Date:        date,
		MealType:    mealType,
		FoodLabel:   label,
		PortionSize: portion,
		CreatedAt:   nowFunc().UTC(),
	}
	if err := st.PutMeal(ctx, m); err != nil {
		return model.MealLog{}, fmt.Errorf("add meal log: %w", err)
	}
	return m, nil
}

func ListMealLogs(ctx context.Context, st store.Store, f ListFilter) ([]model.MealLog, error) {
	userID, sf, err := f.storeFilter()
	if err != nil {
		return nil, err
	}
	items, err := st.ListMeals(ctx, userID, sf)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	return items, nil
}

func DeleteMealLog(ctx context.Context, st store.Store, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("meal log id is required")
	}
	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := st.DeleteMeal(ctx, userID, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete meal log %s: %w", id, err)
	}
	return nil
}

func parseMealType(raw string) (model.MealType, error) {
	switch t := model.MealType(normalizeName(raw)); t {
	case model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack:
		return t, nil
	default:
		return "", fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", raw)
	}
}

func parsePortionSize(raw string) (model.PortionSize, error) {
	switch p := model.PortionSize(normalizeName(raw)); p {
	case "":
		return model.PortionMedium, nil
	case model.PortionSmall, model.PortionMedium, model.PortionLarge:
		return p, nil
	default:
		return "", fmt.Errorf("invalid portion size %q (use small, medium or large)", raw)
	}
}
