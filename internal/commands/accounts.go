package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

func newAccountsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountsListCommand(flags),
		newAccountsCreateCommand(flags),
		newAccountsRenameCommand(flags),
		newAccountsRmCommand(flags),
	)

	return cmd
}

func newAccountsListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := a.store.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			for _, acct := range accounts {
				fmt.Printf("%-30s %-15s %12s\n", acct.Name, acct.Institution, acct.Balance.StringFixed(2))
			}

			return nil
		},
	}
}

func newAccountsCreateCommand(flags *rootFlags) *cobra.Command {
	var institution string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			account := model.Account{Name: args[0], Institution: institution}
			if err := a.store.CreateAccount(cmd.Context(), &account); err != nil {
				return err
			}

			fmt.Printf("Created account %s (id %d)\n", account.Name, account.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&institution, "institution", "", "institution identifier")

	return cmd
}

func newAccountsRenameCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			account, err := a.store.GetAccountByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("account %q: %w", args[0], err)
			}

			account.Name = args[1]

			return a.store.UpdateAccount(cmd.Context(), account)
		},
	}
}

func newAccountsRmCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete an account and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			account, err := a.store.GetAccountByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("account %q: %w", args[0], err)
			}

			return a.store.DeleteAccount(cmd.Context(), account.ID)
		},
	}
}
