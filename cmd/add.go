package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"runway/internal/cli"
	"runway/internal/dateutil"
	"runway/internal/model"
	"runway/internal/store"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagAddAmount   string
	flagAddDate     string
	flagAddDesc     string
	flagAddCategory string
	flagAddStatus   string
	flagAddEvery    string
	flagAddUntil    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Long: `Record a transaction, optionally recurring.

With no --amount, an interactive form opens. Recurring entries expand into
their full series immediately; later occurrences are marked expected.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Signed amount, negative for spending")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Effective date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&flagAddDesc, "desc", "", "Description")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Budget category (name or id)")
	addCmd.Flags().StringVar(&flagAddStatus, "status", string(model.StatusCleared), "Status: cleared, pending, or expected")
	addCmd.Flags().StringVar(&flagAddEvery, "every", "", "Recurrence rule FREQ:PERIOD, e.g. 1:months")
	addCmd.Flags().StringVar(&flagAddUntil, "until", "", "Recurrence end date (default two years out)")
}

func runAdd(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	today := svc.Today()
	if flagAddAmount == "" {
		if err := addForm(today); err != nil {
			return err
		}
	}

	t, err := buildTransaction(st, today)
	if err != nil {
		return err
	}

	written, err := svc.AddTransaction(t)
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	first := written[0]
	fmt.Printf("  Recorded %s on %s (%s)\n", cli.FormatDelta(first.Amount, symbol), first.Date, first.ID)
	if len(written) > 1 {
		last := written[len(written)-1]
		fmt.Printf("  Expanded %d more occurrences through %s\n", len(written)-1, last.Date)
	}
	return nil
}

// addForm fills the add flags interactively.
func addForm(today dateutil.Date) error {
	if flagAddDate == "" {
		flagAddDate = today.String()
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Description("Negative for spending, e.g. -42.50").
				Value(&flagAddAmount).
				Validate(func(s string) error {
					_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("not a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date").
				Value(&flagAddDate).
				Validate(func(s string) error {
					_, err := dateutil.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Value(&flagAddDesc),
			huh.NewInput().
				Title("Category").
				Description("Leave empty for uncategorized").
				Value(&flagAddCategory),
			huh.NewSelect[string]().
				Title("Status").
				Options(huh.NewOptions(
					string(model.StatusCleared),
					string(model.StatusPending),
					string(model.StatusExpected),
				)...).
				Value(&flagAddStatus),
			huh.NewInput().
				Title("Repeat").
				Description("FREQ:PERIOD, e.g. 1:months — empty for one-off").
				Value(&flagAddEvery),
		),
	)
	return form.Run()
}

func buildTransaction(st *store.Store, today dateutil.Date) (model.Transaction, error) {
	var t model.Transaction
	amount, err := strconv.ParseFloat(strings.TrimSpace(flagAddAmount), 64)
	if err != nil {
		return t, fmt.Errorf("invalid amount %q", flagAddAmount)
	}
	t.Amount = amount
	t.Description = flagAddDesc
	t.Status = model.Status(flagAddStatus)

	t.Date = today
	if flagAddDate != "" {
		if t.Date, err = dateutil.ParseDate(flagAddDate); err != nil {
			return t, err
		}
	}

	if flagAddCategory != "" {
		cat, grp, err := st.FindCategory(flagAddCategory)
		if err != nil {
			return t, err
		}
		t.Category = cat.ID
		t.BudgetGroup = grp.ID
	}

	if flagAddEvery != "" {
		freq, period, err := parseEvery(flagAddEvery)
		if err != nil {
			return t, err
		}
		t.IsRecurring = true
		t.RecurFreq = freq
		t.RecurPeriod = period
		if flagAddUntil != "" {
			if t.RecurEndDate, err = dateutil.ParseDate(flagAddUntil); err != nil {
				return t, err
			}
		}
	}
	return t, nil
}

func parseEvery(spec string) (int, model.RecurPeriod, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid --every %q: expected FREQ:PERIOD", spec)
	}
	freq, err := strconv.Atoi(parts[0])
	if err != nil || freq <= 0 {
		return 0, "", fmt.Errorf("invalid --every frequency %q: must be a positive integer", parts[0])
	}
	period := model.RecurPeriod(parts[1])
	if !model.ValidPeriod(period) {
		return 0, "", fmt.Errorf("invalid --every period %q: use days, weeks, months, or years", parts[1])
	}
	return freq, period, nil
}
