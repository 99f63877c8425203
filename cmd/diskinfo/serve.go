package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"diskinfo/pkg/metrics"
	"diskinfo/pkg/server"
	"diskinfo/pkg/stream"
	"diskinfo/pkg/timeline"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve disk stats, widget panels and metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("bind") {
				opts.cfg.Server.Bind = bind
			}

			srv, err := buildServer(opts, prometheus.NewRegistry())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, opts.cfg.Server.Bind)
		},
	}

	cmd.Flags().StringVarP(&bind, "bind", "b", "", "Listen address (overrides server.bind)")

	return cmd
}

// buildServer wires the daemon: instrumented source, timeline, refresher,
// stream hub and metrics registry.
func buildServer(opts *globalOptions, reg *prometheus.Registry) (*server.DiskServer, error) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	svc, err := opts.service(m.InstrumentSource)
	if err != nil {
		return nil, err
	}

	tl := timeline.NewProvider(svc, opts.cfg.RefreshInterval())
	refresher := timeline.NewRefresher(tl)
	refresher.Subscribe(m.ObserveEntry)

	return server.NewDiskServer(server.Config{
		Version:    Version,
		MountPoint: svc.Path(),
		Stats:      svc,
		Timeline:   tl,
		Refresher:  refresher,
		Hub:        stream.NewHub(),
		Gatherer:   reg,
	}), nil
}
