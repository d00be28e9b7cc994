package dashboard

import "github.com/Stendhalsynd/RoutineMate-sub000/internal/model"

const (
	// fullMealsPerDay is the meal count that earns a full diet score.
	fullMealsPerDay = 3
	// fullWorkoutMinutes is the intensity-weighted minutes that earn a full workout score.
	fullWorkoutMinutes = 45
)

func intensityMultiplier(i model.Intensity) float64 {
	switch i {
	case model.IntensityLow:
		return 0.8
	case model.IntensityHigh:
		return 1.2
	default:
		return 1.0
	}
}

// DietScoreFromCount scores meals logged in a day; three or more earn 100.
func DietScoreFromCount(mealCount int) int {
	return roundPercent(float64(mealCount) / fullMealsPerDay * 100)
}

// DietScoreFromLogs is DietScoreFromCount over len(meals).
func DietScoreFromLogs(meals []model.MealLog) int {
	return DietScoreFromCount(len(meals))
}

// WorkoutScoreFromCount treats the count as a fraction of one workout, so any
// positive count scores 100.
func WorkoutScoreFromCount(workoutCount int) int {
	return roundPercent(float64(workoutCount) * 100)
}

// WorkoutScoreFromLogs sums each workout's minutes (30 when unset) times its
// intensity multiplier (low 0.8, medium 1.0, high 1.2) and scores the total
// against 45 minutes, clamped to 0..100.
func WorkoutScoreFromLogs(workouts []model.WorkoutLog) int {
	if len(workouts) == 0 {
		return 0
	}
	weighted := 0.0
	for i := range workouts {
		weighted += float64(workouts[i].Duration()) * intensityMultiplier(workouts[i].Intensity)
	}
	return roundPercent(weighted / fullWorkoutMinutes * 100)
}
