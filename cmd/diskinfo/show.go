package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/render"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the detailed disk usage panel",
		Long: `Show total, used and free space with a usage bar.

With --interactive, press Enter to refresh and q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderer := render.NewRenderer(opts.cfg.Display.Color, out)

			if !interactive {
				return renderer.Window(out, svc.Query())
			}
			return runInteractive(cmd.InOrStdin(), out, renderer, svc)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Keep the panel open; Enter refreshes, q quits")

	return cmd
}

// runInteractive redraws the window on every line read from in until q or EOF.
func runInteractive(in io.Reader, out io.Writer, renderer *render.Renderer, provider diskstat.Provider) error {
	if err := renderer.Window(out, provider.Query()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "[Enter] refresh  [q] quit: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "q", "quit", "exit":
			return nil
		default:
			if err := renderer.Window(out, provider.Query()); err != nil {
				return err
			}
		}
	}
}
