// Package main is the entrypoint for the diskinfo CLI.
package main

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"diskinfo/pkg/config"
	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/log"
	"diskinfo/pkg/render"
)

//go:embed VERSION
var rawVersion string

// Version is the embedded release version.
var Version = strings.TrimSpace(rawVersion)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	debug      bool
	mountPoint string
	source     string
	color      string

	cfg config.Config
}

func (o *globalOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "Path to a TOML configuration file")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.StringVarP(&o.mountPoint, "mount", "m", diskstat.DefaultMountPoint, "Mount point to report on")
	fs.StringVar(&o.source, "source", diskstat.SourcePsutil, "Usage source (psutil or statfs)")
	fs.StringVar(&o.color, "color", render.ColorAuto, "Color output (auto, always, never)")
}

// load reads the configuration file and layers explicitly set flags over it.
func (o *globalOptions) load(fs *pflag.FlagSet) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if fs.Changed("mount") {
		cfg.Disk.MountPoint = o.mountPoint
	}
	if fs.Changed("source") {
		cfg.Disk.Source = o.source
	}
	if fs.Changed("color") {
		cfg.Display.Color = o.color
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := log.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

// service builds the local disk query for the configured mount point.
func (o *globalOptions) service(wrap func(diskstat.Source) diskstat.Source) (*diskstat.Service, error) {
	src, err := diskstat.SourceByName(o.cfg.Disk.Source)
	if err != nil {
		return nil, err
	}
	if wrap != nil {
		src = wrap(src)
	}
	return diskstat.NewService(src, o.cfg.Disk.MountPoint), nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "diskinfo",
		Short: "Disk usage at a glance",
		Long: `diskinfo reports total, used and free space of a mounted volume.

Run 'diskinfo show' for the detailed view or 'diskinfo widget' for the
compact panel. 'diskinfo serve' exposes the same figures over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return opts.load(cmd.Flags())
		},
	}

	opts.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newVersionCmd(),
		newShowCmd(opts),
		newWidgetCmd(opts),
		newWatchCmd(opts),
		newServeCmd(opts),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diskinfo %s\n", Version)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
