package main

import (
	"github.com/spf13/cobra"

	"diskinfo/pkg/client"
	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/render"
	"diskinfo/pkg/timeline"
)

func newWidgetCmd(opts *globalOptions) *cobra.Command {
	var (
		family      string
		remoteURL   string
		placeholder bool
	)

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Render the compact widget panel",
		Long: `Render one widget timeline entry in the small or medium family.

With --remote the figures come from a 'diskinfo serve' daemon; when the
daemon cannot be reached the placeholder figures are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := resolveFamily(opts, cmd.Flags().Changed("family"), family)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("remote") {
				opts.cfg.Client.URL = remoteURL
			}
			provider, err := widgetProvider(opts)
			if err != nil {
				return err
			}

			tl := timeline.NewProvider(provider, opts.cfg.RefreshInterval())
			entry := tl.Snapshot()
			if placeholder {
				entry = tl.Placeholder()
			}

			out := cmd.OutOrStdout()
			return render.NewRenderer(opts.cfg.Display.Color, out).Widget(out, fam, entry)
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", string(render.FamilySmall), "Widget family (small or medium)")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "Read stats from a diskinfo daemon at this URL")
	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "Render the placeholder entry without querying")

	return cmd
}

// resolveFamily prefers an explicit flag over the configured family.
func resolveFamily(opts *globalOptions, changed bool, flagValue string) (render.Family, error) {
	if changed {
		return render.ParseFamily(flagValue)
	}
	return render.ParseFamily(opts.cfg.Display.Family)
}

// widgetProvider returns the daemon-backed provider when a URL is configured,
// the local filesystem otherwise.
func widgetProvider(opts *globalOptions) (diskstat.Provider, error) {
	cc := opts.cfg.Client
	if cc.URL == "" {
		return opts.service(nil)
	}

	c, err := client.New(cc.URL, cc.RetryMax, cc.RetryWaitMin(), cc.RetryWaitMax(), cc.RequestTimeout())
	if err != nil {
		return nil, err
	}
	return client.NewRemoteProvider(c), nil
}
