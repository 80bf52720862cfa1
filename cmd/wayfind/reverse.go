package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/pkg/pattern"
)

func reverseCmd() *cobra.Command {
	var useFragment bool

	cmd := &cobra.Command{
		Use:   "reverse <pattern> [arg...]",
		Short: "Rebuild a canonical path from pattern arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pattern.Compile(args[0])
			if err != nil {
				return err
			}
			path, err := p.Reverse(args[1:], useFragment)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useFragment, "fragment", "f", false, "Emit the fragment marker as '#' instead of '/'")

	return cmd
}
