package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

type BodyMetricInput struct {
	UserID     string
	Date       string
	Weight     *float64
	Unit       string
	BodyFatPct *float64
}

func AddBodyMetric(ctx context.Context, st store.Store, in BodyMetricInput) (model.BodyMetric, error) {
	userID, err := requireUser(in.UserID)
	if err != nil {
		return model.BodyMetric{}, err
	}
	date, err := resolveDate(in.Date)
	if err != nil {
		return model.BodyMetric{}, err
	}
	if in.Weight == nil && in.BodyFatPct == nil {
		return model.BodyMetric{}, fmt.Errorf("weight or body-fat is required")
	}
	m := model.BodyMetric{
		ID:        newID(),
		UserID:    userID,
		Date:      date,
		CreatedAt: nowFunc().UTC(),
	}
	if in.Weight != nil {
		kg, err := convertWeightToKg(*in.Weight, in.Unit)
		if err != nil {
			return model.BodyMetric{}, err
		}
		m.WeightKg = &kg
	}
	if in.BodyFatPct != nil {
		if err := validateBodyFat(*in.BodyFatPct); err != nil {
			return model.BodyMetric{}, err
		}
		v := *in.BodyFatPct
		m.BodyFatPct = &v
	}
	if err := st.PutBodyMetric(ctx, m); err != nil {
		return model.BodyMetric{}, fmt.Errorf("add body metric: %w", err)
	}
	return m, nil
}

func ListBodyMetrics(ctx context.Context, st store.Store, f ListFilter) ([]model.BodyMetric, error) {
	userID, sf, err := f.storeFilter()
	if err != nil {
		return nil, err
	}
	items, err := st.ListBodyMetrics(ctx, userID, sf)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	return items, nil
}

func DeleteBodyMetric(ctx context.Context, st store.Store, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("body metric id is required")
	}
	userID, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := st.DeleteBodyMetric(ctx, userID, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete body metric %s: %w", id, err)
	}
	return nil
}

func validateBodyFat(v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("body-fat must be between 0 and 100")
	}
	return nil
}
