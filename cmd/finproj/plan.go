package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/finlit-projection-go/internal/allocation"
	"github.com/cloud-ru/finlit-projection-go/internal/catalog"
	"github.com/cloud-ru/finlit-projection-go/internal/planner"
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// --- Allocate Command ---

var allocateCmd = &cobra.Command{
	Use:   "allocate [risk]",
	Short: "Show the asset allocation for a risk tolerance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{"risk_tolerance": firstArg(args)}
		return runTool(cmd, "risk_allocation", params, func(w io.Writer, out interface{}) error {
			m := out.(map[string]interface{})
			a := m["allocation"].(allocation.Allocation)
			fmt.Fprintf(w, "Risk: %s\n", m["risk"])
			fmt.Fprintf(w, "  Equity %d%%\n  Debt   %d%%\n  Gold   %d%%\n", a.Equity, a.Debt, a.Gold)
			return nil
		})
	},
}

// --- Funds Command ---

var fundsCmd = &cobra.Command{
	Use:   "funds [risk]",
	Short: "List catalog funds for a risk tolerance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{"risk_tolerance": firstArg(args)}
		if c, _ := cmd.Flags().GetString("category"); c != "" {
			params["category"] = c
		}
		return runTool(cmd, "funds_by_risk", params, func(w io.Writer, out interface{}) error {
			return printFunds(w, out.(map[string]interface{})["funds"].([]catalog.FundRecord))
		})
	},
}

// --- Plan Command ---

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Split a monthly amount by risk and project each asset class",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		risk, _ := flags.GetString("risk")
		age, _ := flags.GetInt("age")
		horizon, _ := flags.GetInt("horizon")
		monthly, _ := flags.GetFloat64("monthly")

		params := map[string]interface{}{
			"risk_tolerance":  risk,
			"age":             float64(age),
			"horizon_years":   float64(horizon),
			"monthly_capital": monthly,
		}
		return runTool(cmd, "investment_plan", params, func(w io.Writer, out interface{}) error {
			plan := out.(*planner.Plan)
			fmt.Fprintf(w, "Risk %s, horizon %d years\n\n", plan.Risk, plan.HorizonYears)

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Asset\tShare\tMonthly\tRate\tValue")
			for _, s := range plan.Sleeves {
				value := 0.0
				if s.Projection != nil {
					value = s.Projection.TotalValue
				}
				fmt.Fprintf(tw, "%s\t%d%%\t%s\t%s\t%s\n", s.AssetClass, s.Percent,
					utils.FormatRupees(s.Monthly), utils.FormatPercent(s.ExpectedRate), utils.FormatRupees(value))
			}
			fmt.Fprintf(tw, "Total\t\t\t\t%s\n", utils.FormatRupees(plan.TotalValue))
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(plan.Funds) > 0 {
				fmt.Fprintln(w, "\nSuggested funds:")
				return printFunds(w, plan.Funds)
			}
			return nil
		})
	},
}

func printFunds(w io.Writer, funds []catalog.FundRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tCategory\tRisk\t3Y\tMin")
	for _, f := range funds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Name, f.Category, f.Risk,
			utils.FormatPercent(f.Returns.ThreeYear), utils.FormatRupees(f.MinInvestment))
	}
	return tw.Flush()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	fundsCmd.Flags().String("category", "", "filter by category (equity, debt, gold, hybrid)")
	fundsCmd.Flags().Bool("json", false, "print raw JSON")
	allocateCmd.Flags().Bool("json", false, "print raw JSON")

	planCmd.Flags().String("risk", "moderate", "risk tolerance (conservative, moderate, aggressive)")
	planCmd.Flags().Int("age", 0, "current age, used when --horizon is not set")
	planCmd.Flags().Int("horizon", 0, "investment horizon in years")
	planCmd.Flags().Float64("monthly", 0, "monthly capital to invest")
	planCmd.Flags().Bool("json", false, "print raw JSON")

	rootCmd.AddCommand(allocateCmd, fundsCmd, planCmd)
}
