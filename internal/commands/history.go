package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the processing history of imported files",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			runs, err := a.store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			for _, run := range runs {
				fmt.Printf("%s  %-20s %-12s seen=%d imported=%d duplicates=%d invalid=%d %s\n",
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Outcome, run.Profile,
					run.RowsSeen, run.RowsImported, run.RowsDuplicate, run.RowsInvalid,
					run.SourceFile)
			}

			return nil
		},
	}
}
