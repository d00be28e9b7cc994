package dashboard

import (
	"fmt"
	"sort"
	"strings"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

type DashboardBucket struct {
	Key             string `json:"key"`
	Label           string `json:"label"`
	From            string `json:"from"`
	To              string `json:"to"`
	AvgOverallScore int    `json:"avgOverallScore"`
	MealCheckRate   int    `json:"mealCheckRate"`
	WorkoutRate     int    `json:"workoutRate"`
	BodyMetricRate  int    `json:"bodyMetricRate"`
}

func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(raw))); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	default:
		return "", fmt.Errorf("invalid granularity %q (use day, week, month)", raw)
	}
}

type bucketAccumulator struct {
	key         string
	label       string
	from        string
	to          string
	days        int
	scoreSum    int
	mealDays    int
	workoutDays int
	metricDays  int
}

func (a *bucketAccumulator) add(d DailyProgress) {
	if a.days == 0 || d.Date < a.from {
		a.from = d.Date
	}
	if a.days == 0 || d.Date > a.to {
		a.to = d.Date
	}
	a.days++
	a.scoreSum += d.OverallScore
	if d.MealLogCount > 0 {
		a.mealDays++
	}
	if d.WorkoutLogCount > 0 {
		a.workoutDays++
	}
	if d.HasBodyMetric {
		a.metricDays++
	}
}

func (a *bucketAccumulator) bucket() DashboardBucket {
	avg := 0
	if a.days > 0 {
		avg = roundPercent(float64(a.scoreSum) / float64(a.days))
	}
	return DashboardBucket{
		Key:             a.key,
		Label:           a.label,
		From:            a.from,
		To:              a.to,
		AvgOverallScore: avg,
		MealCheckRate:   percentOf(a.mealDays, a.days),
		WorkoutRate:     percentOf(a.workoutDays, a.days),
		BodyMetricRate:  percentOf(a.metricDays, a.days),
	}
}

// BucketDailyProgress groups a daily series into day, ISO-week or month
// buckets, sorted ascending by their first date. Unknown granularities
// group by day.
func BucketDailyProgress(days []DailyProgress, granularity Granularity) []DashboardBucket {
	acc := map[string]*bucketAccumulator{}
	order := make([]string, 0, len(days))

	for i := range days {
		key, label := bucketKey(days[i].Date, granularity)
		item, ok := acc[key]
		if !ok {
			item = &bucketAccumulator{key: key, label: label}
			acc[key] = item
			order = append(order, key)
		}
		item.add(days[i])
	}

	out := make([]DashboardBucket, 0, len(order))
	for _, k := range order {
		out = append(out, acc[k].bucket())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].From < out[j].From
	})
	return out
}

func bucketKey(date string, granularity Granularity) (key, label string) {
	date = dateKey(date)
	switch granularity {
	case GranularityWeek:
		t, ok := parseDateKey(date)
		if !ok {
			return date, date
		}
		key = isoWeekKey(t)
		return key, key[5:]
	case GranularityMonth:
		if len(date) < 7 {
			return date, date
		}
		return date[:7], date[:7]
	default:
		if len(date) < len(dateLayout) {
			return date, date
		}
		return date, date[5:]
	}
}
