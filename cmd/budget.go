package cmd

import (
	"fmt"
	"strconv"

	"runway/internal/cli"
	"runway/internal/dateutil"
	"runway/internal/engine"

	"github.com/spf13/cobra"
)

var (
	flagBudgetMonth   string
	flagBudgetFromNow bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the budget with effective amounts for a month",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Change a category's planned amount",
	Long: `Change a category's planned amount.

By default the change applies to one month only, as an override.
With --from-now the base amount changes from the month onward; earlier
months keep the old amount through backfilled overrides.`,
	Args: cobra.ExactArgs(2),
	RunE: runBudgetSet,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.PersistentFlags().StringVarP(&flagBudgetMonth, "month", "m", "", "Month (YYYY-MM, default current)")
	budgetSetCmd.Flags().BoolVar(&flagBudgetFromNow, "from-now", false, "Change the base amount from the month forward")
}

func budgetMonth(today dateutil.Date) (dateutil.Month, error) {
	if flagBudgetMonth != "" {
		return dateutil.ParseMonth(flagBudgetMonth)
	}
	return today.MonthOf(), nil
}

func runBudgetShow(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	month, err := budgetMonth(svc.Today())
	if err != nil {
		return err
	}
	groups, overrides, err := loadBudget(st, month, month)
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET — " + month.String()))
	fmt.Println()
	if len(groups) == 0 {
		fmt.Println("  No budget configured yet. Run `runway setup` to create one.")
		fmt.Println()
		return nil
	}

	for _, g := range groups {
		rows := make([][]string, 0, len(g.Categories))
		for _, cat := range g.Categories {
			effective := engine.ResolvePlannedAmount(cat, month, overrides)
			kind := "variable"
			if cat.IsFixed {
				kind = "fixed"
			}
			note := ""
			if effective != cat.PlannedAmount {
				note = "override"
			}
			rows = append(rows, []string{
				cat.Name, kind, cli.FormatMoney(effective, symbol), note,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s (%s)", g.Name, g.Type),
			Headers: []string{"Category", "Kind", "Planned", ""},
			Rows:    rows,
		}))
	}
	fmt.Println()
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	cat, _, err := st.FindCategory(args[0])
	if err != nil {
		return err
	}
	month, err := budgetMonth(svc.Today())
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	if flagBudgetFromNow {
		if err := svc.SetBaseAmountFrom(cat, month, amount); err != nil {
			return err
		}
		fmt.Printf("  %s budgets %s from %s onward (earlier months keep %s)\n",
			cat.Name, cli.FormatMoney(amount, symbol), month, cli.FormatMoney(cat.PlannedAmount, symbol))
		return nil
	}

	if err := svc.SetMonthAmount(cat, month, amount); err != nil {
		return err
	}
	fmt.Printf("  %s budgets %s for %s only\n", cat.Name, cli.FormatMoney(amount, symbol), month)
	return nil
}
