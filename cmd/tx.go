package cmd

import (
	"fmt"
	"strconv"

	"runway/internal/cli"
	"runway/internal/dateutil"
	"runway/internal/engine"
	"runway/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxFuture  bool
	flagTxDays    int
	flagEditAmt   string
	flagEditDate  string
	flagEditDesc  string
	flagEditState string
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "List, edit, and remove transactions",
}

var txLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent and upcoming transactions",
	Args:  cobra.NoArgs,
	RunE:  runTxLs,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

var txEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txLsCmd, txRmCmd, txEditCmd)
	txLsCmd.Flags().IntVarP(&flagTxDays, "days", "n", 30, "Days back and forward to list")
	txRmCmd.Flags().BoolVar(&flagTxFuture, "future", false, "Also remove later occurrences of the recurrence")
	txEditCmd.Flags().BoolVar(&flagTxFuture, "future", false, "Apply to this and later occurrences of the recurrence")
	txEditCmd.Flags().StringVarP(&flagEditAmt, "amount", "a", "", "New amount")
	txEditCmd.Flags().StringVar(&flagEditDate, "date", "", "New date (YYYY-MM-DD)")
	txEditCmd.Flags().StringVar(&flagEditDesc, "desc", "", "New description")
	txEditCmd.Flags().StringVar(&flagEditState, "status", "", "New status")
}

func editScope() engine.EditScope {
	if flagTxFuture {
		return engine.ScopeFuture
	}
	return engine.ScopeThis
}

func runTxLs(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	today := svc.Today()
	txs, err := st.ListTransactions(dateutil.Range{
		Start: today.AddDays(-flagTxDays),
		End:   today.AddDays(flagTxDays),
	})
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		recur := ""
		if t.RecurrenceID != "" {
			recur = "↻"
		}
		rows = append(rows, []string{
			t.ID, t.Date.String(), t.Description,
			cli.FormatDelta(t.Amount, symbol), string(t.Status), recur,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions ±%d days", flagTxDays),
		Headers: []string{"ID", "Date", "Description", "Amount", "Status", ""},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := svc.RemoveTransaction(args[0], editScope()); err != nil {
		return err
	}
	if flagTxFuture {
		fmt.Println("  Removed this and all later occurrences.")
	} else {
		fmt.Println("  Removed.")
	}
	return nil
}

func runTxEdit(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	svc, st, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	old, err := st.GetTransaction(args[0])
	if err != nil {
		return err
	}

	updated := old
	if flagEditAmt != "" {
		if updated.Amount, err = strconv.ParseFloat(flagEditAmt, 64); err != nil {
			return fmt.Errorf("invalid amount %q", flagEditAmt)
		}
	}
	if flagEditDate != "" {
		if updated.Date, err = dateutil.ParseDate(flagEditDate); err != nil {
			return err
		}
	}
	if flagEditDesc != "" {
		updated.Description = flagEditDesc
	}
	if flagEditState != "" {
		updated.Status = model.Status(flagEditState)
	}

	if err := svc.EditTransaction(old.ID, updated, editScope()); err != nil {
		return err
	}
	if flagTxFuture {
		fmt.Println("  Updated this and all later occurrences.")
	} else {
		fmt.Println("  Updated.")
	}
	return nil
}
