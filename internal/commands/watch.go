package commands

import (
	"os/signal"
	"syscall"

	"github.com/robfig/cron"
	"github.com/spf13/cobra"
	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/internal/importer"
)

func newWatchCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Import pending files now and again on the configured schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			imp, err := a.newImporter()
			if err != nil {
				return err
			}

			run := func() {
				paths, err := importer.Scan(a.cfg.Inbox)
				if err != nil {
					klog.Errorf("Failed to scan inbox: %v", err)
					return
				}
				if len(paths) == 0 {
					return
				}

				printRuns(imp.ImportFiles(ctx, paths))
			}

			run()

			c := cron.New()
			if err := c.AddFunc(a.cfg.UpdateFrequency, run); err != nil {
				return err
			}

			c.Start()
			defer c.Stop()

			klog.Infof("Watching %s on schedule %q", a.cfg.Inbox, a.cfg.UpdateFrequency)
			<-ctx.Done()

			return nil
		},
	}
}
