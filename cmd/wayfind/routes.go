package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
)

func routesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Validate and list the route manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tHANDLER\tTITLE\tDEFAULT")
			for _, rc := range cfg.Routes {
				def := ""
				if rc.Default {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rc.Pattern, rc.Handler, rc.Title, def)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			success("%d routes, manifest valid", len(cfg.Routes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing wayfind.json")

	return cmd
}
