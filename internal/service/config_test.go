package service_test

import (
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

func TestConfigSetGetList(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, " Scoring.Diet_Weight ", "0.5"); err != nil {
		t.Fatalf("set diet weight: %v", err)
	}
	if err := service.SetConfig(db, service.ConfigDefaultRange, "30D"); err != nil {
		t.Fatalf("set default range: %v", err)
	}

	v, ok, err := service.GetConfig(db, service.ConfigDietWeight)
	if err != nil || !ok || v != "0.5" {
		t.Fatalf("expected diet weight 0.5, got %q ok=%v err=%v", v, ok, err)
	}
	if _, ok, err := service.GetConfig(db, service.ConfigWorkoutWeight); err != nil || ok {
		t.Fatalf("expected workout weight unset, got ok=%v err=%v", ok, err)
	}

	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if len(all) != 2 || all[service.ConfigDefaultRange] != "30d" {
		t.Fatalf("unexpected config list %+v", all)
	}
}

func TestSetConfigRejectsUnknownKeysAndBadValues(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := [][2]string{
		{"barcode_provider", "usda"},
		{service.ConfigDietWeight, "heavy"},
		{service.ConfigWorkoutWeight, "-1"},
		{service.ConfigDefaultRange, "14d"},
		{"", "x"},
	}
	for _, c := range cases {
		if err := service.SetConfig(db, c[0], c[1]); err == nil {
			t.Fatalf("expected error for %s=%s", c[0], c[1])
		}
	}
}

func TestScoringPolicyAndRangeFromConfig(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := model.DefaultScoringPolicy()
	policy, err := service.ScoringPolicyFromConfig(db, base)
	if err != nil {
		t.Fatalf("policy without overrides: %v", err)
	}
	if policy != base {
		t.Fatalf("expected base policy, got %+v", policy)
	}
	r, err := service.DefaultRangeFromConfig(db, dashboard.Range7d)
	if err != nil || r != dashboard.Range7d {
		t.Fatalf("expected fallback 7d, got %q (%v)", r, err)
	}

	if err := service.SetConfig(db, service.ConfigWorkoutWeight, "0.6"); err != nil {
		t.Fatalf("set workout weight: %v", err)
	}
	if err := service.SetConfig(db, service.ConfigDefaultRange, "90d"); err != nil {
		t.Fatalf("set default range: %v", err)
	}
	policy, err = service.ScoringPolicyFromConfig(db, base)
	if err != nil {
		t.Fatalf("policy with overrides: %v", err)
	}
	if policy.WorkoutWeight != 0.6 || policy.DietWeight != base.DietWeight {
		t.Fatalf("expected workout weight override only, got %+v", policy)
	}
	r, err = service.DefaultRangeFromConfig(db, dashboard.Range7d)
	if err != nil || r != dashboard.Range90d {
		t.Fatalf("expected 90d, got %q (%v)", r, err)
	}
}
