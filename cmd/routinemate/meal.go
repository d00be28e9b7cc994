package routinemate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and review meals",
}

var (
	mealDate    string
	mealType    string
	mealFood    string
	mealPortion string
	mealJSON    bool
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			m, err := service.AddMealLog(ctx, sess.store, service.MealLogInput{
				UserID:      sess.settings.UserID,
				Date:        mealDate,
				MealType:    mealType,
				FoodLabel:   mealFood,
				PortionSize: mealPortion,
			})
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd, m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s (%s %s on %s)\n", m.ID, m.MealType, m.FoodLabel, m.Date)
			return nil
		})
		return jsonFailure(cmd, mealJSON, err)
	},
}

var mealFilter listFlags

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			items, err := service.ListMealLogs(ctx, sess.store, mealFilter.filter(sess.settings.UserID))
			if err != nil {
				return err
			}
			if mealFilter.json {
				return printJSON(cmd, items)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tMEAL\tFOOD\tPORTION")
			for _, m := range items {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Date, m.MealType, m.FoodLabel, m.PortionSize)
			}
			return nil
		})
		return jsonFailure(cmd, mealFilter.json, err)
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			if err := service.DeleteMealLog(ctx, sess.store, sess.settings.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

// listFlags holds the filter flags shared by the list subcommands.
type listFlags struct {
	date  string
	from  string
	to    string
	limit int
	json  bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Single day YYYY-MM-DD")
	cmd.Flags().StringVar(&f.from, "from", "", "Start date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "End date YYYY-MM-DD")
	cmd.Flags().IntVar(&f.limit, "limit", 50, "Max rows")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
}

func (f *listFlags) filter(userID string) service.ListFilter {
	return service.ListFilter{UserID: userID, Date: f.date, FromDate: f.from, ToDate: f.to, Limit: f.limit}
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type: breakfast|lunch|dinner|snack")
	mealAddCmd.Flags().StringVar(&mealFood, "food", "", "What you ate")
	mealAddCmd.Flags().StringVar(&mealPortion, "portion", "medium", "Portion size: small|medium|large")
	mealAddCmd.Flags().BoolVar(&mealJSON, "json", false, "Output as JSON")
	_ = mealAddCmd.MarkFlagRequired("type")
	_ = mealAddCmd.MarkFlagRequired("food")
	mealFilter.register(mealListCmd)
}
