package model

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type PortionSize string

const (
	PortionSmall  PortionSize = "small"
	PortionMedium PortionSize = "medium"
	PortionLarge  PortionSize = "large"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// DefaultWorkoutMinutes is assumed for workouts logged without a duration.
const DefaultWorkoutMinutes = 30

type MealLog struct {
	ID          string      `json:"id" firestore:"id"`
	UserID      string      `json:"userId" firestore:"userId"`
	Date        string      `json:"date" firestore:"date"`
	MealType    MealType    `json:"mealType" firestore:"mealType"`
	FoodLabel   string      `json:"foodLabel" firestore:"foodLabel"`
	PortionSize PortionSize `json:"portionSize" firestore:"portionSize"`
	CreatedAt   time.Time   `json:"createdAt" firestore:"createdAt"`
}

type WorkoutLog struct {
	ID              string    `json:"id" firestore:"id"`
	UserID          string    `json:"userId" firestore:"userId"`
	Date            string    `json:"date" firestore:"date"`
	BodyPart        string    `json:"bodyPart" firestore:"bodyPart"`
	Purpose         string    `json:"purpose" firestore:"purpose"`
	Tool            string    `json:"tool" firestore:"tool"`
	ExerciseName    string    `json:"exerciseName" firestore:"exerciseName"`
	Sets            *int      `json:"sets,omitempty" firestore:"sets,omitempty"`
	Reps            *int      `json:"reps,omitempty" firestore:"reps,omitempty"`
	WeightKg        *float64  `json:"weightKg,omitempty" firestore:"weightKg,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty" firestore:"durationMinutes,omitempty"`
	Intensity       Intensity `json:"intensity" firestore:"intensity"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}

// Duration returns the logged duration in minutes, or DefaultWorkoutMinutes when unset.
func (w WorkoutLog) Duration() int {
	if w.DurationMinutes == nil {
		return DefaultWorkoutMinutes
	}
	return *w.DurationMinutes
}

type BodyMetric struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"userId" firestore:"userId"`
	Date       string    `json:"date" firestore:"date"`
	WeightKg   *float64  `json:"weightKg,omitempty" firestore:"weightKg,omitempty"`
	BodyFatPct *float64  `json:"bodyFatPct,omitempty" firestore:"bodyFatPct,omitempty"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

type Goal struct {
	ID                  string    `json:"id" firestore:"id"`
	UserID              string    `json:"userId" firestore:"userId"`
	DDay                *string   `json:"dDay,omitempty" firestore:"dDay,omitempty"`
	TargetWeightKg      *float64  `json:"targetWeightKg,omitempty" firestore:"targetWeightKg,omitempty"`
	TargetBodyFat       *float64  `json:"targetBodyFat,omitempty" firestore:"targetBodyFat,omitempty"`
	WeeklyRoutineTarget int       `json:"weeklyRoutineTarget" firestore:"weeklyRoutineTarget"`
	CreatedAt           time.Time `json:"createdAt" firestore:"createdAt"`
}

// ScoringPolicy weights the three daily score components. Weights are
// relative; they are divided by their sum before use.
type ScoringPolicy struct {
	DietWeight        float64 `json:"dietWeight" yaml:"diet_weight"`
	WorkoutWeight     float64 `json:"workoutWeight" yaml:"workout_weight"`
	ConsistencyWeight float64 `json:"consistencyWeight" yaml:"consistency_weight"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		DietWeight:        0.4,
		WorkoutWeight:     0.45,
		ConsistencyWeight: 0.15,
	}
}

// Normalized returns the policy scaled so the weights sum to 1. Policies with
// a non-positive sum, or any negative weight, fall back to the default.
func (p ScoringPolicy) Normalized() ScoringPolicy {
	if p.DietWeight < 0 || p.WorkoutWeight < 0 || p.ConsistencyWeight < 0 {
		p = DefaultScoringPolicy()
	}
	sum := p.DietWeight + p.WorkoutWeight + p.ConsistencyWeight
	if sum <= 0 {
		p = DefaultScoringPolicy()
		sum = p.DietWeight + p.WorkoutWeight + p.ConsistencyWeight
	}
	return ScoringPolicy{
		DietWeight:        p.DietWeight / sum,
		WorkoutWeight:     p.WorkoutWeight / sum,
		ConsistencyWeight: p.ConsistencyWeight / sum,
	}
}
