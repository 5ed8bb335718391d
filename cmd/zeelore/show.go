package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind] [filter]",
		Short: "List entities one per line",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args, "bare")
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [kind] [filter]",
		Short: "Show entities in full plain text",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args, "pretty")
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [kind] [filter]",
		Short: "Dump the raw source records as JSON",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args, "dump")
		},
	}
}

func runRender(args []string, format string) error {
	kind, filter := argsKindFilter(args)
	world, _ := buildWorld()
	out, err := renderKind(world, kind, filter, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, out)
	return nil
}
