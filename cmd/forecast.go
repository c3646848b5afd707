package cmd

import (
	"fmt"

	"runway/internal/cli"
	"runway/internal/dateutil"
	"runway/internal/engine"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [YYYY-MM]",
	Short: "Show the burn-rate forecast for a month",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

// monthRange is the inclusive day range of a month.
func monthRange(m dateutil.Month) dateutil.Range {
	return dateutil.Range{Start: m.First(), End: m.First().AddDays(m.Days() - 1)}
}

func runForecast(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	today := svc.Today()
	month := today.MonthOf()
	if len(args) == 1 {
		if month, err = dateutil.ParseMonth(args[0]); err != nil {
			return err
		}
	}

	groups, overrides, err := loadBudget(st, month, month)
	if err != nil {
		return err
	}
	txs, err := st.ListTransactions(monthRange(month))
	if err != nil {
		return err
	}

	rate := engine.ForecastBurnRate(month, today, groups, overrides, txs)
	if !rate.IsProjected {
		fmt.Printf("\n  %s is fully in the past — nothing to project.\n\n", month)
		return nil
	}

	symbol := cfg.General.Currency
	breakdown := engine.ForecastBreakdown(month, groups, overrides, txs)

	rows := make([][]string, 0, len(breakdown))
	for _, row := range breakdown {
		rows = append(rows, []string{
			fmt.Sprintf("%s / %s", row.GroupName, row.CategoryName),
			string(row.GroupType),
			cli.FormatMoney(row.Planned, symbol),
			cli.FormatMoney(row.Actual, symbol),
			cli.FormatMoney(row.Remaining, symbol),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BURN FORECAST — " + month.String()))
	fmt.Println()
	if len(rows) == 0 {
		fmt.Println("  No variable budget categories — nothing paces through the month.")
	} else {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Variable categories",
			Headers: []string{"Category", "Type", "Planned", "Actual", "Remaining"},
			Rows:    rows,
		}))
	}

	remainingDays := month.Days() - rate.StartDay + 1
	fmt.Printf("  Burn rate: %s across the %d remaining days (from day %d)\n",
		cli.FormatRate(rate.RatePerDay, symbol), remainingDays, rate.StartDay)
	if rate.RatePerDay < 0 {
		fmt.Println("  Expected income outweighs expected spend — balance trends up.")
	}
	fmt.Println()
	return nil
}
