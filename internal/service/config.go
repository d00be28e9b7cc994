package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

const (
	ConfigDietWeight        = "scoring.diet_weight"
	ConfigWorkoutWeight     = "scoring.workout_weight"
	ConfigConsistencyWeight = "scoring.consistency_weight"
	ConfigDefaultRange      = "dashboard.default_range"
)

var configValidators = map[string]func(string) error{
	ConfigDietWeight:        validateWeightValue,
	ConfigWorkoutWeight:     validateWeightValue,
	ConfigConsistencyWeight: validateWeightValue,
	ConfigDefaultRange: func(v string) error {
		_, err := dashboard.ParseRange(v)
		return err
	},
}

// ConfigKeys lists the settings accepted by SetConfig.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configValidators))
	for k := range configValidators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateWeightValue(v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("weight %q is not a number", v)
	}
	return validateNonNegativeFloat("weight", f)
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	validate, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	value = strings.TrimSpace(value)
	if err := validate(value); err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.ToLower(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ScoringPolicyFromConfig overlays any stored scoring weights on base.
func ScoringPolicyFromConfig(db *sql.DB, base model.ScoringPolicy) (model.ScoringPolicy, error) {
	fields := []struct {
		key string
		dst *float64
	}{
		{ConfigDietWeight, &base.DietWeight},
		{ConfigWorkoutWeight, &base.WorkoutWeight},
		{ConfigConsistencyWeight, &base.ConsistencyWeight},
	}
	for _, f := range fields {
		raw, ok, err := GetConfig(db, f.key)
		if err != nil {
			return model.ScoringPolicy{}, err
		}
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.ScoringPolicy{}, fmt.Errorf("parse config %q: %w", f.key, err)
		}
		*f.dst = v
	}
	return base, nil
}

// DefaultRangeFromConfig returns the stored dashboard range, or fallback.
func DefaultRangeFromConfig(db *sql.DB, fallback dashboard.Range) (dashboard.Range, error) {
	raw, ok, err := GetConfig(db, ConfigDefaultRange)
	if err != nil || !ok {
		return fallback, err
	}
	r, err := dashboard.ParseRange(raw)
	if err != nil {
		return fallback, fmt.Errorf("config %q: %w", ConfigDefaultRange, err)
	}
	return r, nil
}
