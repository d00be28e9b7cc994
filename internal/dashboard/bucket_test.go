package dashboard_test

import (
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
)

func TestBucketDailyProgressByDay(t *testing.T) {
	t.Parallel()
	days := []dashboard.DailyProgress{
		{Date: "2026-10-09", MealLogCount: 2, OverallScore: 40},
		{Date: "2026-10-10", HasBodyMetric: true, OverallScore: 15},
		{Date: "2026-10-11"},
		{Date: "2026-10-12", WorkoutLogCount: 1, OverallScore: 30},
		{Date: "2026-10-13"},
		{Date: "2026-10-14"},
		{Date: "2026-10-15"},
	}
	buckets := dashboard.BucketDailyProgress(days, dashboard.GranularityDay)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		if b.From != days[i].Date || b.To != days[i].Date {
			t.Fatalf("bucket %d: expected from=to=%s, got %s..%s", i, days[i].Date, b.From, b.To)
		}
	}
	if buckets[0].Label != "10-09" {
		t.Fatalf("expected month-day label, got %q", buckets[0].Label)
	}
	if buckets[0].MealCheckRate != 100 || buckets[0].WorkoutRate != 0 || buckets[0].AvgOverallScore != 40 {
		t.Fatalf("unexpected first bucket %+v", buckets[0])
	}
	if buckets[1].BodyMetricRate != 100 || buckets[1].MealCheckRate != 0 {
		t.Fatalf("unexpected second bucket %+v", buckets[1])
	}
	if buckets[3].WorkoutRate != 100 {
		t.Fatalf("unexpected fourth bucket %+v", buckets[3])
	}
}

func TestBucketDailyProgressByISOWeek(t *testing.T) {
	t.Parallel()
	// Supplied newest first to check ordering.
	days := []dashboard.DailyProgress{
		{Date: "2026-10-15", OverallScore: 41},
		{Date: "2026-10-14", OverallScore: 30},
		{Date: "2026-10-13", WorkoutLogCount: 2, OverallScore: 20},
		{Date: "2026-10-12", MealLogCount: 1, OverallScore: 10},
		{Date: "2026-10-11", OverallScore: 61},
		{Date: "2026-10-10", HasBodyMetric: true, OverallScore: 70},
		{Date: "2026-10-09", MealLogCount: 3, OverallScore: 80},
	}
	buckets := dashboard.BucketDailyProgress(days, dashboard.GranularityWeek)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 week buckets, got %d", len(buckets))
	}

	first, second := buckets[0], buckets[1]
	if first.Key != "2026-W41" || first.From != "2026-10-09" || first.To != "2026-10-11" {
		t.Fatalf("unexpected first week bucket %+v", first)
	}
	if first.AvgOverallScore != 70 || first.MealCheckRate != 33 || first.BodyMetricRate != 33 || first.WorkoutRate != 0 {
		t.Fatalf("unexpected first week rates %+v", first)
	}
	if second.Key != "2026-W42" || second.From != "2026-10-12" || second.To != "2026-10-15" {
		t.Fatalf("unexpected second week bucket %+v", second)
	}
	if second.AvgOverallScore != 25 || second.MealCheckRate != 25 || second.WorkoutRate != 25 || second.BodyMetricRate != 0 {
		t.Fatalf("unexpected second week rates %+v", second)
	}
}

func TestBucketDailyProgressWeekSpansYearBoundary(t *testing.T) {
	t.Parallel()
	days := []dashboard.DailyProgress{
		{Date: "2020-12-31"},
		{Date: "2021-01-01"},
		{Date: "2021-01-02"},
		{Date: "2021-01-03"},
	}
	buckets := dashboard.BucketDailyProgress(days, dashboard.GranularityWeek)
	if len(buckets) != 1 {
		t.Fatalf("expected one ISO week bucket, got %d", len(buckets))
	}
	if buckets[0].Key != "2020-W53" || buckets[0].From != "2020-12-31" || buckets[0].To != "2021-01-03" {
		t.Fatalf("unexpected bucket %+v", buckets[0])
	}
}

func TestBucketDailyProgressByMonth(t *testing.T) {
	t.Parallel()
	days := []dashboard.DailyProgress{
		{Date: "2026-09-29", MealLogCount: 1, OverallScore: 50},
		{Date: "2026-09-30", OverallScore: 0},
		{Date: "2026-10-01", WorkoutLogCount: 1, OverallScore: 90},
		{Date: "2026-10-02", WorkoutLogCount: 1, HasBodyMetric: true, OverallScore: 100},
	}
	buckets := dashboard.BucketDailyProgress(days, dashboard.GranularityMonth)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2026-09" || buckets[0].AvgOverallScore != 25 || buckets[0].MealCheckRate != 50 {
		t.Fatalf("unexpected september bucket %+v", buckets[0])
	}
	if buckets[1].Key != "2026-10" || buckets[1].WorkoutRate != 100 || buckets[1].BodyMetricRate != 50 || buckets[1].AvgOverallScore != 95 {
		t.Fatalf("unexpected october bucket %+v", buckets[1])
	}
}

func TestBucketRatesStayWithinPercentRange(t *testing.T) {
	t.Parallel()
	days := make([]dashboard.DailyProgress, 0, 90)
	for i := 0; i < 90; i++ {
		d := dashboard.DailyProgress{Date: "2026-07-01", MealLogCount: i % 4, WorkoutLogCount: i % 3, OverallScore: i % 101}
		days = append(days, d)
	}
	for _, g := range []dashboard.Granularity{dashboard.GranularityDay, dashboard.GranularityWeek, dashboard.GranularityMonth} {
		for _, b := range dashboard.BucketDailyProgress(days, g) {
			for _, v := range []int{b.AvgOverallScore, b.MealCheckRate, b.WorkoutRate, b.BodyMetricRate} {
				if v < 0 || v > 100 {
					t.Fatalf("%s bucket %s has out-of-range value %d", g, b.Key, v)
				}
			}
		}
	}
}

func TestBucketDailyProgressEmpty(t *testing.T) {
	t.Parallel()
	buckets := dashboard.BucketDailyProgress(nil, dashboard.GranularityWeek)
	if buckets == nil || len(buckets) != 0 {
		t.Fatalf("expected empty non-nil buckets, got %#v", buckets)
	}
}

func TestParseGranularity(t *testing.T) {
	t.Parallel()
	if g, err := dashboard.ParseGranularity(" Week "); err != nil || g != dashboard.GranularityWeek {
		t.Fatalf("expected week, got %q err=%v", g, err)
	}
	if _, err := dashboard.ParseGranularity("year"); err == nil {
		t.Fatalf("expected invalid granularity to fail")
	}
}
