package dashboard

import "github.com/Stendhalsynd/RoutineMate-sub000/internal/model"

type Status string

const (
	StatusOnTrack  Status = "on_track"
	StatusCaution  Status = "caution"
	StatusOffTrack Status = "off_track"
)

const (
	onTrackThreshold = 80
	cautionThreshold = 50

	consistencyWithMetric   = 100
	consistencyWithActivity = 70
)

type DailyProgress struct {
	Date             string `json:"date"`
	MealLogCount     int    `json:"mealLogCount"`
	WorkoutLogCount  int    `json:"workoutLogCount"`
	HasBodyMetric    bool   `json:"hasBodyMetric"`
	DietScore        int    `json:"dietScore"`
	WorkoutScore     int    `json:"workoutScore"`
	ConsistencyScore int    `json:"consistencyScore"`
	OverallScore     int    `json:"overallScore"`
	Status           Status `json:"status"`
}

// ComputeDailyProgress scores a single calendar day. A nil policy uses
// model.DefaultScoringPolicy.
func ComputeDailyProgress(date string, meals []model.MealLog, workouts []model.WorkoutLog, hasBodyMetric bool, policy *model.ScoringPolicy) DailyProgress {
	weights := model.DefaultScoringPolicy()
	if policy != nil {
		weights = *policy
	}
	weights = weights.Normalized()

	out := DailyProgress{
		Date:            dateKey(date),
		MealLogCount:    len(meals),
		WorkoutLogCount: len(workouts),
		HasBodyMetric:   hasBodyMetric,
		DietScore:       DietScoreFromLogs(meals),
		WorkoutScore:    WorkoutScoreFromLogs(workouts),
	}
	out.ConsistencyScore = consistencyScore(out.MealLogCount+out.WorkoutLogCount, hasBodyMetric)
	out.OverallScore = roundPercent(
		float64(out.DietScore)*weights.DietWeight +
			float64(out.WorkoutScore)*weights.WorkoutWeight +
			float64(out.ConsistencyScore)*weights.ConsistencyWeight,
	)
	out.Status = classifyStatus(out.OverallScore)
	return out
}

func consistencyScore(activityCount int, hasBodyMetric bool) int {
	if hasBodyMetric {
		return consistencyWithMetric
	}
	if activityCount > 0 {
		return consistencyWithActivity
	}
	return 0
}

func classifyStatus(overall int) Status {
	switch {
	case overall >= onTrackThreshold:
		return StatusOnTrack
	case overall >= cautionThreshold:
		return StatusCaution
	default:
		return StatusOffTrack
	}
}
