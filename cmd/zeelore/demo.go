package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// demoCmd walks a few representative lookups, mirroring the exploratory
// session the tool grew out of.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "demo",
		Short:  "Walk a few representative lookups against the loaded data",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			world, _ := buildWorld()

			for _, event := range world.EventsAt(0, "Pigmote Isle").All() {
				fmt.Fprintln(os.Stdout, event.Pretty())
			}

			if location, ok := world.Locations.Get(102004); ok {
				fmt.Fprintln(os.Stdout, location.Pretty())
			}
			fmt.Fprintln(os.Stdout, world.Locations.Find("pigmote").Bare())

			if world.Locations.Len() >= 6 {
				fmt.Fprintln(os.Stdout, world.Locations.Slice(3, 6).Pretty())
			}

			for _, event := range world.EventsAt(0, "Pigmote Isle").Find("rose").All() {
				fmt.Fprintln(os.Stdout, event.Bare())
			}
			return nil
		},
	}
}
