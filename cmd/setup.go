package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"runway/internal/config"
	"runway/internal/model"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to runway!")
	fmt.Println()

	// 1. Currency symbol
	fmt.Println("  1. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	symbol, _ := reader.ReadString('\n')
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		cfg.General.Currency = symbol
	}
	fmt.Println()

	// 2. Timezone
	fmt.Println("  2. Timezone for resolving \"today\"")
	fmt.Println("     IANA name like Europe/Amsterdam; empty keeps the system zone.")
	fmt.Print("     > ")
	tz, _ := reader.ReadString('\n')
	if tz = strings.TrimSpace(tz); tz != "" {
		cfg.General.Timezone = tz
		if _, err := config.Location(cfg); err != nil {
			return err
		}
	}
	fmt.Println()

	// 3. Projection horizon
	fmt.Println("  3. Default projection horizon")
	fmt.Println("     (1) 30 days")
	fmt.Println("     (2) 60 days [default]")
	fmt.Println("     (3) 90 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.DefaultDays = 30
	case "3":
		cfg.General.DefaultDays = 90
	default:
		cfg.General.DefaultDays = 60
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// 4. Starter budget, only when none exists yet
	groups, err := st.ListBudgetGroups()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("  4. No budget yet — create a starter one? [Y/n]")
		fmt.Print("     > ")
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a == "" || a == "y" || a == "yes" {
			for _, g := range starterBudget() {
				if _, err := st.UpsertBudgetGroup(g); err != nil {
					return err
				}
			}
			fmt.Println("     Created — adjust it with `runway budget set`.")
		}
		fmt.Println()
	}

	// 5. Opening balance
	fmt.Println("  5. Current account balance (empty to skip)")
	fmt.Print("     > ")
	balStr, _ := reader.ReadString('\n')
	if balStr = strings.TrimSpace(balStr); balStr != "" {
		balance, err := strconv.ParseFloat(balStr, 64)
		if err != nil {
			return fmt.Errorf("invalid balance %q", balStr)
		}
		if _, err := svc.AddTransaction(model.Transaction{
			Description: "Opening balance",
			Amount:      balance,
			Date:        svc.Today(),
			Status:      model.StatusCleared,
		}); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `runway setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func starterBudget() []model.BudgetGroup {
	return []model.BudgetGroup{
		{
			Name: "Income", Type: model.GroupIncome, SortKey: 0,
			Categories: []model.BudgetCategory{
				{Name: "Salary", IsFixed: true, SortKey: 0},
				{Name: "Side income", SortKey: 1},
			},
		},
		{
			Name: "Essentials", Type: model.GroupExpense, SortKey: 1,
			Categories: []model.BudgetCategory{
				{Name: "Rent", IsFixed: true, SortKey: 0},
				{Name: "Groceries", SortKey: 1},
				{Name: "Transport", SortKey: 2},
			},
		},
		{
			Name: "Lifestyle", Type: model.GroupExpense, SortKey: 2,
			Categories: []model.BudgetCategory{
				{Name: "Fun money", SortKey: 0},
				{Name: "Subscriptions", IsFixed: true, SortKey: 1},
			},
		},
		{
			Name: "Goals", Type: model.GroupGoal, SortKey: 3,
			Categories: []model.BudgetCategory{
				{Name: "Savings", SortKey: 0},
			},
		},
	}
}
