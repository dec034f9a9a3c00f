package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerfeed/ledgerfeed/internal/export"
	"github.com/ledgerfeed/ledgerfeed/internal/storage"
)

func newExportCommand(flags *rootFlags) *cobra.Command {
	var (
		account  string
		from     string
		to       string
		category string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := storage.Filter{Category: category}

			if account != "" {
				acct, err := a.store.GetAccountByName(cmd.Context(), account)
				if err != nil {
					return fmt.Errorf("account %q: %w", account, err)
				}
				filter.AccountID = acct.ID
			}

			if filter.From, err = parseDateFlag(from); err != nil {
				return err
			}
			if filter.To, err = parseDateFlag(to); err != nil {
				return err
			}

			txns, err := a.store.ListTransactions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			data, err := export.Transactions(txns)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = os.Stdout.Write(data)
				return err
			}

			return os.WriteFile(out, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "restrict to one account")
	cmd.Flags().StringVar(&from, "from", "", "earliest posted date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest posted date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "restrict to one category")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")

	return cmd
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}

	return t, nil
}
