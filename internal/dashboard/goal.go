package dashboard

import "github.com/Stendhalsynd/RoutineMate-sub000/internal/model"

const defaultRangeDays = 7

type GoalProgress struct {
	GoalID                string   `json:"goalId,omitempty"`
	WeeklyRoutineTarget   int      `json:"weeklyRoutineTarget"`
	CompletedRoutineCount int      `json:"completedRoutineCount"`
	AverageWeeklyWorkouts float64  `json:"averageWeeklyWorkouts"`
	RoutineCompletionRate int      `json:"routineCompletionRate"`
	TargetWeightKg        *float64 `json:"targetWeightKg,omitempty"`
	LatestWeightKg        *float64 `json:"latestWeightKg,omitempty"`
	TargetBodyFat         *float64 `json:"targetBodyFat,omitempty"`
	LatestBodyFatPct      *float64 `json:"latestBodyFatPct,omitempty"`
	DDay                  *string  `json:"dDay,omitempty"`
	DaysToDDay            *int     `json:"daysToDDay,omitempty"`
}

// ComputeGoalProgress projects goal targets against the workouts logged in
// the active window and the latest body metric. Every workout counts toward
// the routine total, including several on the same day.
func ComputeGoalProgress(goal model.Goal, workouts []model.WorkoutLog, latest *model.BodyMetric, rangeDays int, asOfDate string) GoalProgress {
	if rangeDays <= 0 {
		rangeDays = defaultRangeDays
	}
	target := goal.WeeklyRoutineTarget
	if target < 1 {
		target = 1
	}

	effectiveWeeks := float64(rangeDays) / 7
	if effectiveWeeks < 1 {
		effectiveWeeks = 1
	}

	out := GoalProgress{
		GoalID:                goal.ID,
		WeeklyRoutineTarget:   goal.WeeklyRoutineTarget,
		CompletedRoutineCount: len(workouts),
	}
	out.AverageWeeklyWorkouts = round1(float64(out.CompletedRoutineCount) / effectiveWeeks)
	out.RoutineCompletionRate = roundPercent(out.AverageWeeklyWorkouts / float64(target) * 100)

	if goal.TargetWeightKg != nil {
		out.TargetWeightKg = copyFloat(goal.TargetWeightKg)
	}
	if goal.TargetBodyFat != nil {
		out.TargetBodyFat = copyFloat(goal.TargetBodyFat)
	}
	if latest != nil {
		if latest.WeightKg != nil {
			out.LatestWeightKg = copyFloat(latest.WeightKg)
		}
		if latest.BodyFatPct != nil {
			out.LatestBodyFatPct = copyFloat(latest.BodyFatPct)
		}
	}
	if goal.DDay != nil {
		dday := *goal.DDay
		out.DDay = &dday
		out.DaysToDDay = daysBetween(asOfDate, dday)
	}
	return out
}

func daysBetween(from, to string) *int {
	start, ok := parseDateKey(from)
	if !ok {
		return nil
	}
	end, ok := parseDateKey(to)
	if !ok {
		return nil
	}
	days := int(end.Sub(start).Hours() / 24)
	return &days
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
