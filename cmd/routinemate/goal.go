package routinemate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage routine goals",
}

var (
	goalWeekly        int
	goalDDay          string
	goalTargetWeight  float64
	goalUnit          string
	goalTargetBodyFat float64
	goalJSON          bool
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a new active goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SetGoalInput{
			DDay:                goalDDay,
			TargetWeight:        optionalFloat(cmd, "target-weight", goalTargetWeight),
			Unit:                goalUnit,
			TargetBodyFat:       optionalFloat(cmd, "target-body-fat", goalTargetBodyFat),
			WeeklyRoutineTarget: goalWeekly,
		}
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			in.UserID = sess.settings.UserID
			g, err := service.SetGoal(ctx, sess.store, in)
			if err != nil {
				return err
			}
			if goalJSON {
				return printJSON(cmd, g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set goal %s: %d routines/week\n", g.ID, g.WeeklyRoutineTarget)
			return nil
		})
		return jsonFailure(cmd, goalJSON, err)
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			g, err := service.ActiveGoal(ctx, sess.store, sess.settings.UserID)
			if err != nil {
				return err
			}
			if goalJSON {
				return printJSON(cmd, g)
			}
			if g == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No goal set")
				return nil
			}
			printGoal(cmd, *g)
			return nil
		})
		return jsonFailure(cmd, goalJSON, err)
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show goal history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			goals, err := service.ListGoals(ctx, sess.store, sess.settings.UserID, 0)
			if err != nil {
				return err
			}
			if goalJSON {
				return printJSON(cmd, goals)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tCREATED\tWEEKLY\tD_DAY\tTARGET_KG\tTARGET_BF%")
			for _, g := range goals {
				dday := "-"
				if g.DDay != nil {
					dday = *g.DDay
				}
				fmt.Fprintf(out, "%s\t%s\t%d\t%s\t%s\t%s\n", g.ID, g.CreatedAt.Local().Format("2006-01-02 15:04"), g.WeeklyRoutineTarget, dday,
					formatOptionalFloat(g.TargetWeightKg, "%.1f"), formatOptionalFloat(g.TargetBodyFat, "%.1f"))
			}
			return nil
		})
		return jsonFailure(cmd, goalJSON, err)
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			if err := service.DeleteGoal(ctx, sess.store, sess.settings.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", args[0])
			return nil
		})
	},
}

func printGoal(cmd *cobra.Command, g model.Goal) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Goal %s (set %s)\n", g.ID, g.CreatedAt.Local().Format("2006-01-02"))
	fmt.Fprintf(out, "Weekly routines: %d\n", g.WeeklyRoutineTarget)
	if g.DDay != nil {
		fmt.Fprintf(out, "D-Day: %s\n", *g.DDay)
	}
	if g.TargetWeightKg != nil {
		fmt.Fprintf(out, "Target weight: %.1fkg\n", *g.TargetWeightKg)
	}
	if g.TargetBodyFat != nil {
		fmt.Fprintf(out, "Target body fat: %.1f%%\n", *g.TargetBodyFat)
	}
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd, goalListCmd, goalDeleteCmd)

	goalSetCmd.Flags().IntVar(&goalWeekly, "weekly-target", 3, "Workouts per week")
	goalSetCmd.Flags().StringVar(&goalDDay, "d-day", "", "Target date YYYY-MM-DD")
	goalSetCmd.Flags().Float64Var(&goalTargetWeight, "target-weight", 0, "Target body weight")
	goalSetCmd.Flags().StringVar(&goalUnit, "unit", "kg", "Target weight unit: kg|lb")
	goalSetCmd.Flags().Float64Var(&goalTargetBodyFat, "target-body-fat", 0, "Target body-fat percentage")
	for _, c := range []*cobra.Command{goalSetCmd, goalShowCmd, goalListCmd} {
		c.Flags().BoolVar(&goalJSON, "json", false, "Output as JSON")
	}
}
