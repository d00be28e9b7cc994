package routinemate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log and review workouts",
}

var (
	workoutDate      string
	workoutBodyPart  string
	workoutPurpose   string
	workoutTool      string
	workoutName      string
	workoutSets      int
	workoutReps      int
	workoutWeight    float64
	workoutDuration  int
	workoutIntensity string
	workoutJSON      bool
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.WorkoutLogInput{
			Date:            workoutDate,
			BodyPart:        workoutBodyPart,
			Purpose:         workoutPurpose,
			Tool:            workoutTool,
			ExerciseName:    workoutName,
			Sets:            optionalInt(cmd, "sets", workoutSets),
			Reps:            optionalInt(cmd, "reps", workoutReps),
			WeightKg:        optionalFloat(cmd, "weight", workoutWeight),
			DurationMinutes: optionalInt(cmd, "duration", workoutDuration),
			Intensity:       workoutIntensity,
		}
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			in.UserID = sess.settings.UserID
			w, err := service.AddWorkoutLog(ctx, sess.store, in)
			if err != nil {
				return err
			}
			if workoutJSON {
				return printJSON(cmd, w)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %s (%s, %d min %s on %s)\n", w.ID, w.ExerciseName, w.Duration(), w.Intensity, w.Date)
			return nil
		})
		return jsonFailure(cmd, workoutJSON, err)
	},
}

var workoutFilter listFlags

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			items, err := service.ListWorkoutLogs(ctx, sess.store, workoutFilter.filter(sess.settings.UserID))
			if err != nil {
				return err
			}
			if workoutFilter.json {
				return printJSON(cmd, items)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tEXERCISE\tBODY_PART\tSETS\tREPS\tWEIGHT_KG\tMIN\tINTENSITY")
			for _, w := range items {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					w.ID, w.Date, w.ExerciseName, w.BodyPart,
					formatOptionalInt(w.Sets), formatOptionalInt(w.Reps), formatOptionalFloat(w.WeightKg, "%.1f"),
					w.Duration(), w.Intensity)
			}
			return nil
		})
		return jsonFailure(cmd, workoutFilter.json, err)
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			if err := service.DeleteWorkoutLog(ctx, sess.store, sess.settings.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutDeleteCmd)

	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "Date YYYY-MM-DD (default today)")
	workoutAddCmd.Flags().StringVar(&workoutName, "name", "", "Exercise name")
	workoutAddCmd.Flags().StringVar(&workoutBodyPart, "body-part", "", "Body part trained (e.g. legs, chest, full)")
	workoutAddCmd.Flags().StringVar(&workoutPurpose, "purpose", "", "Purpose (e.g. strength, cardio, mobility)")
	workoutAddCmd.Flags().StringVar(&workoutTool, "tool", "", "Equipment used (e.g. barbell, machine, none)")
	workoutAddCmd.Flags().IntVar(&workoutSets, "sets", 0, "Sets performed")
	workoutAddCmd.Flags().IntVar(&workoutReps, "reps", 0, "Reps per set")
	workoutAddCmd.Flags().Float64Var(&workoutWeight, "weight", 0, "Load in kg")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Duration in minutes (default 30 when scoring)")
	workoutAddCmd.Flags().StringVar(&workoutIntensity, "intensity", "medium", "Intensity: low|medium|high")
	workoutAddCmd.Flags().BoolVar(&workoutJSON, "json", false, "Output as JSON")
	_ = workoutAddCmd.MarkFlagRequired("name")
	workoutFilter.register(workoutListCmd)
}
