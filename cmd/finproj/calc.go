package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/pkg/utils"
)

// calculatorCmd строит команду для одного режима; fields перечисляет нужные флаги сумм
func calculatorCmd(use, short, tool string, fields ...string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := calcParams(cmd, fields)
			if err != nil {
				return err
			}
			if tool == "emi_calculator" {
				if schedule, _ := cmd.Flags().GetBool("schedule"); schedule {
					return runTool(cmd, "emi_schedule", params, printSchedule)
				}
			}
			return runTool(cmd, tool, params, func(w io.Writer, out interface{}) error {
				showSeries, _ := cmd.Flags().GetBool("series")
				return printProjection(w, out.(*calculations.ProjectionResult), showSeries)
			})
		},
	}

	for _, f := range fields {
		switch f {
		case calculations.FieldPrincipal:
			cmd.Flags().Float64("principal", 0, "principal / corpus amount")
		case calculations.FieldContribution:
			cmd.Flags().Float64("monthly", 0, "monthly contribution")
		case calculations.FieldWithdrawal:
			cmd.Flags().Float64("withdrawal", 0, "monthly withdrawal")
		}
	}
	cmd.Flags().Float64("rate", 0, "expected annual rate, percent")
	cmd.Flags().Int("years", 0, "tenure in years")
	cmd.Flags().Int("months", 0, "tenure in months (added to --years)")
	cmd.Flags().Bool("series", false, "print the period-by-period series")
	cmd.Flags().Bool("json", false, "print raw JSON")
	if tool == "emi_calculator" {
		cmd.Flags().Bool("schedule", false, "print the full amortization schedule")
	}
	return cmd
}

func calcParams(cmd *cobra.Command, fields []string) (map[string]interface{}, error) {
	flags := cmd.Flags()
	params := map[string]interface{}{}

	names := map[string]string{
		calculations.FieldPrincipal:    "principal",
		calculations.FieldContribution: "monthly",
		calculations.FieldWithdrawal:   "withdrawal",
	}
	for _, f := range fields {
		v, err := flags.GetFloat64(names[f])
		if err != nil {
			return nil, err
		}
		if flags.Changed(names[f]) {
			params[f] = v
		}
	}

	rate, _ := flags.GetFloat64("rate")
	years, _ := flags.GetInt("years")
	months, _ := flags.GetInt("months")
	if flags.Changed("rate") {
		params[calculations.FieldRate] = rate
	}
	params[calculations.FieldTenureYears] = float64(years)
	params[calculations.FieldTenureMonths] = float64(months)
	return params, nil
}

// runTool вызывает инструмент и печатает результат как JSON или через render
func runTool(cmd *cobra.Command, tool string, params map[string]interface{}, render func(io.Writer, interface{}) error) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		out, err := a.registry.Call(ctx, tool, params)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON || render == nil {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		return render(cmd.OutOrStdout(), out)
	})
}

func printProjection(w io.Writer, res *calculations.ProjectionResult, showSeries bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Mode\t%s\n", res.Mode)
	switch res.Mode {
	case calculations.ModeEMI:
		fmt.Fprintf(tw, "Monthly EMI\t%s\n", utils.FormatRupees(res.MonthlyEMI))
		fmt.Fprintf(tw, "Total interest\t%s\n", utils.FormatRupees(res.TotalInterest))
		fmt.Fprintf(tw, "Total payment\t%s\n", utils.FormatRupees(res.TotalValue))
	case calculations.ModeSWP:
		fmt.Fprintf(tw, "Corpus\t%s\n", utils.FormatRupees(res.InvestedAmount))
		fmt.Fprintf(tw, "Total withdrawn\t%s\n", utils.FormatRupees(res.TotalWithdrawn))
		fmt.Fprintf(tw, "Remaining value\t%s\n", utils.FormatRupees(res.TotalValue))
		fmt.Fprintf(tw, "Estimated returns\t%s\n", utils.FormatRupees(res.EstimatedReturns))
	default:
		fmt.Fprintf(tw, "Invested\t%s\n", utils.FormatRupees(res.InvestedAmount))
		fmt.Fprintf(tw, "Estimated returns\t%s\n", utils.FormatRupees(res.EstimatedReturns))
		fmt.Fprintf(tw, "Total value\t%s\n", utils.FormatRupees(res.TotalValue))
	}
	if g := res.Growth; g != nil {
		fmt.Fprintf(tw, "ROI\t%s\n", utils.FormatPercent(g.ROIPercent))
		if g.AnnualizedReturnPercent != 0 {
			fmt.Fprintf(tw, "Annualized\t%s\n", utils.FormatPercent(g.AnnualizedReturnPercent))
		}
	}

	if showSeries {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Period\tInvested\tValue\tWithdrawn")
		for _, p := range res.Series {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Period,
				utils.FormatAmount(p.Invested), utils.FormatAmount(p.Value), utils.FormatAmount(p.Withdrawn))
		}
	}
	return tw.Flush()
}

func printSchedule(w io.Writer, out interface{}) error {
	s := out.(*calculations.LoanSchedule)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "EMI %s for %d months, total interest %s\n\n",
		utils.FormatRupees(s.Summary.MonthlyPayment), s.Summary.Months, utils.FormatRupees(s.Summary.TotalInterest))
	fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tRemaining\t")
	for _, e := range s.Schedule {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", e.Month,
			utils.FormatAmount(e.Payment), utils.FormatAmount(e.Interest),
			utils.FormatAmount(e.PrincipalComponent), utils.FormatAmount(e.RemainingPrincipal))
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(
		calculatorCmd("sip", "Project a monthly SIP", "sip_calculator", calculations.FieldContribution),
		calculatorCmd("lumpsum", "Project a one-time investment", "lumpsum_calculator", calculations.FieldPrincipal),
		calculatorCmd("emi", "Compute a loan EMI", "emi_calculator", calculations.FieldPrincipal),
		calculatorCmd("fd", "Compute a fixed deposit maturity", "fd_calculator", calculations.FieldPrincipal),
		calculatorCmd("swp", "Simulate a systematic withdrawal plan", "swp_calculator",
			calculations.FieldPrincipal, calculations.FieldWithdrawal),
		calculatorCmd("mf", "Project a mutual fund with lumpsum and SIP", "mutual_fund_calculator",
			calculations.FieldPrincipal, calculations.FieldContribution),
		compareCmd,
	)
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare SIP against a lumpsum of the same total",
	RunE: func(cmd *cobra.Command, args []string) error {
		total, _ := cmd.Flags().GetFloat64("total")
		params, err := calcParams(cmd, nil)
		if err != nil {
			return err
		}
		params["total_amount"] = total

		return runTool(cmd, "compare_sip_lumpsum", params, func(w io.Writer, out interface{}) error {
			res := out.(*calculations.ComparisonResult)
			fmt.Fprintf(w, "SIP:     %s\n", utils.FormatRupees(res.SIP.TotalValue))
			fmt.Fprintf(w, "Lumpsum: %s\n", utils.FormatRupees(res.Lumpsum.TotalValue))
			fmt.Fprintf(w, "%s\n", res.Recommendation)
			return nil
		})
	},
}

func init() {
	compareCmd.Flags().Float64("total", 0, "total amount to invest")
	compareCmd.Flags().Float64("rate", 0, "expected annual rate, percent")
	compareCmd.Flags().Int("years", 0, "tenure in years")
	compareCmd.Flags().Int("months", 0, "tenure in months (added to --years)")
	compareCmd.Flags().Bool("json", false, "print raw JSON")
}
