package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"diskinfo/pkg/log"
	"diskinfo/pkg/render"
	"diskinfo/pkg/timeline"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		family   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Redraw the widget on the refresh cadence until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := resolveFamily(opts, cmd.Flags().Changed("family"), family)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = opts.cfg.RefreshInterval()
			}

			provider, err := widgetProvider(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := render.NewRenderer(opts.cfg.Display.Color, out)
			refresher := timeline.NewRefresher(timeline.NewProvider(provider, interval))
			refresher.Subscribe(func(e timeline.Entry) {
				if err := renderer.Widget(out, fam, e); err != nil {
					log.Error().Err(err).Msg("Failed to render widget")
				}
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, refresher)
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", string(render.FamilySmall), "Widget family (small or medium)")
	cmd.Flags().DurationVar(&interval, "interval", timeline.DefaultRefreshInterval, "Refresh interval")

	return cmd
}

func runWatch(ctx context.Context, refresher *timeline.Refresher) error {
	refresher.Start()
	<-ctx.Done()
	refresher.Stop()
	return nil
}
