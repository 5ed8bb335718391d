package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zeelore/pkg/lore"
)

func usageCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "usage [filter]",
		Short: "Report where qualities are referenced from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}

			mode := lore.FirstMatch
			if all {
				mode = lore.AllMatches
			}

			world, _ := buildWorld()
			for _, q := range world.Qualities.Find(filter).All() {
				fmt.Fprintln(os.Stdout, world.UsageReport(q, mode))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all-matches", false, "Report every reference instead of the first per event")
	return cmd
}
