package routinemate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage body metrics (weight and body-fat)",
}

var (
	bodyWeight float64
	bodyUnit   string
	bodyFat    float64
	bodyDate   string
	bodyJSON   bool
)

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add body metric",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.BodyMetricInput{
			Date:       bodyDate,
			Weight:     optionalFloat(cmd, "weight", bodyWeight),
			Unit:       bodyUnit,
			BodyFatPct: optionalFloat(cmd, "body-fat", bodyFat),
		}
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			in.UserID = sess.settings.UserID
			m, err := service.AddBodyMetric(ctx, sess.store, in)
			if err != nil {
				return err
			}
			if bodyJSON {
				return printJSON(cmd, m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added body metric %s on %s\n", m.ID, m.Date)
			return nil
		})
		return jsonFailure(cmd, bodyJSON, err)
	},
}

var (
	bodyFilter  listFlags
	bodyOutUnit string
)

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := withSession(cmd, func(ctx context.Context, sess *session) error {
			items, err := service.ListBodyMetrics(ctx, sess.store, bodyFilter.filter(sess.settings.UserID))
			if err != nil {
				return err
			}
			if bodyFilter.json {
				return printJSON(cmd, items)
			}
			unit := bodyOutUnit
			if unit == "" {
				unit = "kg"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT\tUNIT\tBODY_FAT%")
			for _, m := range items {
				weight := "-"
				if m.WeightKg != nil {
					w, err := service.WeightFromKg(*m.WeightKg, unit)
					if err != nil {
						return err
					}
					weight = fmt.Sprintf("%.2f", w)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Date, weight, unit, formatOptionalFloat(m.BodyFatPct, "%.2f"))
			}
			return nil
		})
		return jsonFailure(cmd, bodyFilter.json, err)
	},
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete body metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, sess *session) error {
			if err := service.DeleteBodyMetric(ctx, sess.store, sess.settings.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted body metric %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd, bodyDeleteCmd)

	bodyAddCmd.Flags().Float64Var(&bodyWeight, "weight", 0, "Body weight")
	bodyAddCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg|lb")
	bodyAddCmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "Body-fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD (default today)")
	bodyAddCmd.Flags().BoolVar(&bodyJSON, "json", false, "Output as JSON")
	bodyFilter.register(bodyListCmd)
	bodyListCmd.Flags().StringVar(&bodyOutUnit, "unit", "kg", "Output weight unit: kg|lb")
}
