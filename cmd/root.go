package cmd

import (
	"fmt"
	"os"

	"runway/internal/config"
	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/ledger"
	"runway/internal/model"
	"runway/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagToday string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Personal budgeting and balance projection CLI",
	Long:  "Track transactions, budget by category, and project your balance runway forward in time.",
	RunE:  runTimeline,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Override today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config, falling back to defaults with a warning.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config unreadable (%v), using defaults\n", err)
	}
	return cfg
}

// resolveToday resolves "today" once, from the --today flag or the
// configured timezone. The engine never re-derives it.
func resolveToday(cfg config.Config) (dateutil.Date, error) {
	if flagToday != "" {
		return dateutil.ParseDate(flagToday)
	}
	loc, err := config.Location(cfg)
	if err != nil {
		return dateutil.Date{}, err
	}
	return dateutil.Today(loc), nil
}

// openService opens the store and wires the ledger service around it. The
// caller closes the returned store.
func openService(cfg config.Config) (*ledger.Service, *store.Store, error) {
	today, err := resolveToday(cfg)
	if err != nil {
		return nil, nil, err
	}

	path := flagDB
	if path == "" {
		path = config.DBPath(cfg)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return ledger.New(st, today), st, nil
}

// loadBudget fetches the budget configuration and the overrides for a month
// span, indexed for resolution.
func loadBudget(st *store.Store, from, to dateutil.Month) ([]model.BudgetGroup, engine.OverrideIndex, error) {
	groups, err := st.ListBudgetGroups()
	if err != nil {
		return nil, nil, fmt.Errorf("loading budget groups: %w", err)
	}
	overrides, err := st.ListOverrides(from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("loading budget overrides: %w", err)
	}
	return groups, engine.IndexOverrides(overrides), nil
}
