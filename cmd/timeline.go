package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"runway/internal/cli"
	"runway/internal/config"
	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/model"
	"runway/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagTimelineDays int
	flagFrom         string
	flagTo           string
	flagForecast     bool
	flagSimulate     []string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the day-by-day balance timeline",
	RunE:  runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().IntVarP(&flagTimelineDays, "days", "n", 0, "Days to project past today (default from config)")
	timelineCmd.Flags().StringVar(&flagFrom, "from", "", "Window start (YYYY-MM-DD, default first of this month)")
	timelineCmd.Flags().StringVar(&flagTo, "to", "", "Window end (YYYY-MM-DD)")
	timelineCmd.Flags().BoolVarP(&flagForecast, "forecast", "f", false, "Project variable spend past today")
	timelineCmd.Flags().StringArrayVar(&flagSimulate, "simulate", nil, "What-if entry DATE:AMOUNT[:DESC], repeatable")
}

func runTimeline(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	today := svc.Today()
	r, err := timelineRange(cfg, today)
	if err != nil {
		return err
	}
	if r.Len() < 2 {
		fmt.Println("  Window is shorter than two days — nothing to draw.")
		return nil
	}

	opening, err := svc.BalanceBefore(r.Start)
	if err != nil {
		return err
	}
	txs, err := st.ListTransactions(r)
	if err != nil {
		return err
	}

	ghosts, err := parseSimulated(flagSimulate)
	if err != nil {
		return err
	}
	txs = append(txs, ghosts...)

	var rates map[dateutil.Month]model.BurnRate
	if flagForecast {
		rates = timelineRates(st, r, today, ghosts)
	}

	points := engine.BuildBalanceTimeline(opening, txs, r, rates, today)
	renderTimeline(cfg, points, opening)
	return nil
}

// timelineRates computes per-month burn rates for the window, degrading to
// actuals only on error. The ledger handed to the forecaster covers the
// window's months in full, so a window starting mid-month still counts that
// month's earlier spend against the plan.
func timelineRates(st *store.Store, r dateutil.Range, today dateutil.Date, ghosts []model.Transaction) map[dateutil.Month]model.BurnRate {
	groups, overrides, err := loadBudget(st, r.Start.MonthOf(), r.End.MonthOf())
	if err == nil {
		var monthTxs []model.Transaction
		if monthTxs, err = st.ListTransactions(r.MonthSpan()); err == nil {
			return engine.BurnRatesForRange(r, today, groups, overrides, append(monthTxs, ghosts...))
		}
	}
	fmt.Println(cli.Warn(fmt.Sprintf("forecast unavailable — %v", err)))
	return nil
}

// timelineRange computes the window: explicit --from/--to when given, else
// first of the current month through today plus the configured horizon.
func timelineRange(cfg config.Config, today dateutil.Date) (dateutil.Range, error) {
	days := flagTimelineDays
	if days <= 0 {
		days = cfg.General.DefaultDays
	}

	r := dateutil.Range{
		Start: today.MonthOf().First(),
		End:   today.AddDays(days),
	}

	var err error
	if flagFrom != "" {
		if r.Start, err = dateutil.ParseDate(flagFrom); err != nil {
			return r, err
		}
	}
	if flagTo != "" {
		if r.End, err = dateutil.ParseDate(flagTo); err != nil {
			return r, err
		}
	}
	return r, nil
}

// parseSimulated turns --simulate DATE:AMOUNT[:DESC] specs into ghost
// transactions that only ever live in this process.
func parseSimulated(specs []string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid --simulate %q: expected DATE:AMOUNT[:DESC]", spec)
		}
		d, err := dateutil.ParseDate(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid --simulate %q: %w", spec, err)
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --simulate amount %q", parts[1])
		}
		desc := "what-if"
		if len(parts) == 3 {
			desc = parts[2]
		}
		out = append(out, model.Transaction{
			Description: desc,
			Amount:      amount,
			Date:        d,
			Status:      model.StatusExpected,
			IsGhost:     true,
		})
	}
	return out, nil
}

func renderTimeline(cfg config.Config, points []model.TimelinePoint, opening float64) {
	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("BALANCE TIMELINE"))
	fmt.Println()

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Balance
		if p.Projected != nil {
			values[i] = *p.Projected
		}
	}
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values, cli.ColorBlue))

	rows := [][]string{}
	prev := opening
	for i, p := range points {
		delta := p.Balance - prev
		prev = p.Balance

		if delta == 0 && !p.IsToday && i != len(points)-1 {
			continue
		}
		date := p.Date.String()
		if p.IsToday {
			date += " ◀"
		}
		deltaStr := ""
		if delta != 0 {
			deltaStr = cli.FormatDelta(delta, symbol)
		}
		projStr := ""
		if p.Projected != nil {
			projStr = cli.FormatMoney(*p.Projected, symbol)
		}
		rows = append(rows, []string{date, deltaStr, cli.FormatMoney(p.Balance, symbol), projStr})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Change", "Balance", "Projected"},
		Rows:    rows,
	}))

	// Shortfall warning: lowest projected (or actual) point in the window.
	lowest := points[0]
	for _, p := range points[1:] {
		if effective(p) < effective(lowest) {
			lowest = p
		}
	}
	if effective(lowest) < 0 {
		fmt.Println(cli.Warn(fmt.Sprintf(
			"Shortfall of %s projected on %s",
			cli.FormatMoney(effective(lowest), symbol), lowest.Date,
		)))
	}
	fmt.Println()
}

func effective(p model.TimelinePoint) float64 {
	if p.Projected != nil {
		return *p.Projected
	}
	return p.Balance
}
