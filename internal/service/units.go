package service

import (
	"fmt"
	"strings"
)

const poundsToKg = 0.45359237

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * poundsToKg, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kilogram value for display.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "", "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / poundsToKg, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
