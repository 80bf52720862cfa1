package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/pattern"
)

func matchCmd() *cobra.Command {
	var dir string
	var rawPattern string

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Show which route a path dispatches to",
		Long: `Match tests a path against the route manifest (first registered
matching pattern wins) and prints the extracted parameters. With
--pattern, the path is tested against that single pattern instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if rawPattern != "" {
				p, err := pattern.Compile(rawPattern)
				if err != nil {
					return err
				}
				params, err := p.Parse(path)
				if err != nil {
					return err
				}
				success("%q matches %q, captures %q", path, rawPattern, params)
				return nil
			}

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			for _, rc := range cfg.Routes {
				p, err := pattern.Compile(rc.Pattern)
				if err != nil {
					return err
				}
				if !p.Matches(path) {
					continue
				}
				params, err := p.Parse(path)
				if err != nil {
					return err
				}
				success("%q -> %s (%s), captures %q", path, rc.Pattern, rc.Handler, params)
				return nil
			}

			return fmt.Errorf("no route matches %q (the default route would handle it)", path)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing wayfind.json")
	cmd.Flags().StringVarP(&rawPattern, "pattern", "p", "", "Test against a single pattern instead of the manifest")

	return cmd
}
