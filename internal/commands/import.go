package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ledgerfeed/ledgerfeed/internal/archive"
	"github.com/ledgerfeed/ledgerfeed/internal/importer"
	"github.com/ledgerfeed/ledgerfeed/internal/model"
	"github.com/ledgerfeed/ledgerfeed/pkg/config"
)

func newImportCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import [files...]",
		Short: "Import bank export files; with no arguments the inbox is scanned",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			paths := args
			if len(paths) == 0 {
				paths, err = importer.Scan(a.cfg.Inbox)
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				fmt.Println("Nothing to import")
				return nil
			}

			imp, err := a.newImporter()
			if err != nil {
				return err
			}

			runs := imp.ImportFiles(ctx, paths)
			printRuns(runs)

			return nil
		},
	}
}

func archiverFor(cfg *config.Config) *archive.Archiver {
	return archive.New(cfg.ArchiveDir)
}

func printRuns(runs []*model.ImportRun) {
	for _, run := range runs {
		fmt.Printf("%s: %s (profile %s) seen=%d imported=%d duplicates=%d invalid=%d\n",
			run.SourceFile, run.Outcome, run.Profile,
			run.RowsSeen, run.RowsImported, run.RowsDuplicate, run.RowsInvalid)
		if run.Error != "" {
			fmt.Printf("  error: %s\n", run.Error)
		}
		if run.Warning != "" {
			fmt.Printf("  warning: %s\n", run.Warning)
		}
	}
}
