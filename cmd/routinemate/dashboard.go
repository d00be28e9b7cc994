package routinemate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var (
	dashboardRange    string
	dashboardDate     string
	dashboardJSON     bool
	dashboardNoCharts bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Score recent days and summarize routine adherence",
	RunE: func(cmd *cobra.Command, args []string) error {
		return jsonFailure(cmd, dashboardJSON, runDashboard(cmd))
	},
}

func runDashboard(cmd *cobra.Command) error {
	now, err := dashboardAnchor(dashboardDate)
	if err != nil {
		return err
	}
	return withSession(cmd, func(ctx context.Context, sess *session) error {
		r, err := resolveDashboardRange(sess)
		if err != nil {
			return err
		}
		policy, err := service.ScoringPolicyFromConfig(sess.db, sess.settings.Scoring)
		if err != nil {
			return err
		}

		started := time.Now()
		summary, err := service.Dashboard(ctx, sess.store, service.DashboardInput{
			UserID: sess.settings.UserID,
			Range:  r,
			Now:    now,
			Policy: &policy,
		})
		if err != nil {
			return err
		}
		logger.Debug("dashboard computed", "range", summary.Range, "days", len(summary.Daily), "elapsed", time.Since(started))

		if dashboardJSON {
			return printJSON(cmd, summary)
		}
		printDashboard(cmd, summary, dashboardNoCharts)
		return nil
	})
}

// resolveDashboardRange prefers --range, then app_config, then the YAML
// default.
func resolveDashboardRange(sess *session) (dashboard.Range, error) {
	if strings.TrimSpace(dashboardRange) != "" {
		return dashboard.ParseRange(dashboardRange)
	}
	return service.DefaultRangeFromConfig(sess.db, sess.settings.DefaultRange)
}

// dashboardAnchor maps --date to noon UTC on that day so the window ends on
// it. An empty value means now.
func dashboardAnchor(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return d.Add(12 * time.Hour), nil
}

func printDashboard(cmd *cobra.Command, s *dashboard.DashboardSummary, noCharts bool) {
	out := cmd.OutOrStdout()
	meta := s.ConsistencyMeta
	fmt.Fprintf(out, "Range: %s (%s to %s, %s buckets)\n", s.Range, meta.FromDate, meta.ToDate, s.Granularity)
	fmt.Fprintf(out, "Adherence: %d%%\n", s.AdherenceRate)
	fmt.Fprintf(out, "Totals: meals=%d workouts=%d body-metrics=%d active-days=%d/%d\n", s.TotalMeals, s.TotalWorkouts, meta.TotalBodyMetrics, meta.ActiveDays, meta.TotalDays)
	fmt.Fprintf(out, "Latest: weight=%s body-fat=%s\n", formatOptionalFloat(s.LatestWeightKg, "%.1fkg"), formatOptionalFloat(s.LatestBodyFatPct, "%.1f%%"))

	fmt.Fprintln(out, "\nDaily")
	fmt.Fprintln(out, "DATE\tMEALS\tWORKOUTS\tBODY\tDIET\tWORKOUT\tCONSISTENCY\tOVERALL\tSTATUS")
	for _, d := range s.Daily {
		body := "no"
		if d.HasBodyMetric {
			body = "yes"
		}
		fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t%s\n", d.Date, d.MealLogCount, d.WorkoutLogCount, body, d.DietScore, d.WorkoutScore, d.ConsistencyScore, d.OverallScore, d.Status)
	}

	fmt.Fprintln(out, "\nBuckets")
	fmt.Fprintln(out, "BUCKET\tFROM\tTO\tAVG_SCORE\tMEAL%\tWORKOUT%\tBODY%")
	for _, b := range s.Buckets {
		fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n", b.Label, b.From, b.To, b.AvgOverallScore, b.MealCheckRate, b.WorkoutRate, b.BodyMetricRate)
	}

	fmt.Fprintln(out, "\nGoal")
	if len(s.Goals) == 0 {
		fmt.Fprintln(out, "No goal set")
	}
	for _, g := range s.Goals {
		fmt.Fprintf(out, "Routines: %d done, %.1f/week of %d (%d%%)\n", g.CompletedRoutineCount, g.AverageWeeklyWorkouts, g.WeeklyRoutineTarget, g.RoutineCompletionRate)
		if g.TargetWeightKg != nil {
			fmt.Fprintf(out, "Weight: target %.1fkg, latest %s\n", *g.TargetWeightKg, formatOptionalFloat(g.LatestWeightKg, "%.1fkg"))
		}
		if g.TargetBodyFat != nil {
			fmt.Fprintf(out, "Body fat: target %.1f%%, latest %s\n", *g.TargetBodyFat, formatOptionalFloat(g.LatestBodyFatPct, "%.1f%%"))
		}
		if g.DDay != nil {
			fmt.Fprintf(out, "D-Day: %s (%s)\n", *g.DDay, formatDaysLeft(g.DaysToDDay))
		}
	}

	if noCharts {
		return
	}
	fmt.Fprintln(out, "\nCharts")
	printBucketBars(out, "Overall score", s.Buckets, func(b dashboard.DashboardBucket) int { return b.AvgOverallScore })
	printBucketBars(out, "Meal check rate", s.Buckets, func(b dashboard.DashboardBucket) int { return b.MealCheckRate })
	printBucketBars(out, "Workout rate", s.Buckets, func(b dashboard.DashboardBucket) int { return b.WorkoutRate })
}

func formatDaysLeft(days *int) string {
	switch {
	case days == nil:
		return "n/a"
	case *days == 0:
		return "today"
	case *days < 0:
		return fmt.Sprintf("%d days ago", -*days)
	default:
		return fmt.Sprintf("%d days left", *days)
	}
}

type anyWriter interface {
	Write(p []byte) (n int, err error)
}

// printBucketBars scales bars against 100 since every bucket value is a
// percentage.
func printBucketBars(out anyWriter, name string, buckets []dashboard.DashboardBucket, valueFn func(dashboard.DashboardBucket) int) {
	fmt.Fprintf(out, "%s:\n", name)
	total := 0
	for i := range buckets {
		total += valueFn(buckets[i])
	}
	if total == 0 {
		fmt.Fprintln(out, "  (all zero)")
		return
	}
	for i := range buckets {
		v := valueFn(buckets[i])
		fmt.Fprintf(out, "  %-8s %-20s %3d\n", buckets[i].Label, horizontalBar(v, 100, 20), v)
	}
}

func horizontalBar(value, maxValue, width int) string {
	if width <= 0 || maxValue <= 0 || value <= 0 {
		return ""
	}
	bars := int(math.Round(float64(value) / float64(maxValue) * float64(width)))
	if bars == 0 {
		bars = 1
	}
	if bars > width {
		bars = width
	}
	return strings.Repeat("#", bars)
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardRange, "range", "", "Window: 7d|30d|90d (default from config)")
	dashboardCmd.Flags().StringVar(&dashboardDate, "date", "", "Last day of the window YYYY-MM-DD (default today, UTC)")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output as JSON")
	dashboardCmd.Flags().BoolVar(&dashboardNoCharts, "no-charts", false, "Disable ASCII charts in text output")
}
