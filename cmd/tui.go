package cmd

import (
	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/model"
	"runway/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive balance chart",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	today := svc.Today()
	window := dateutil.Range{
		Start: today.MonthOf().First(),
		End:   today.AddDays(cfg.General.DefaultDays),
	}

	loader := func(r dateutil.Range, forecast bool) ([]model.TimelinePoint, error) {
		opening, err := svc.BalanceBefore(r.Start)
		if err != nil {
			return nil, err
		}
		txs, err := st.ListTransactions(r)
		if err != nil {
			return nil, err
		}

		var rates map[dateutil.Month]model.BurnRate
		if forecast {
			groups, overrides, err := loadBudget(st, r.Start.MonthOf(), r.End.MonthOf())
			if err == nil {
				// A failed budget fetch degrades to actuals only. Rates see
				// the window's months in full, not just the window slice.
				if monthTxs, err := st.ListTransactions(r.MonthSpan()); err == nil {
					rates = engine.BurnRatesForRange(r, today, groups, overrides, monthTxs)
				}
			}
		}
		return engine.BuildBalanceTimeline(opening, txs, r, rates, today), nil
	}

	return tui.Run(tui.New(loader, cfg.General.Currency, today, window))
}
