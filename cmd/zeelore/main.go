package main

import (
	"os"

	"github.com/spf13/cobra"

	"zeelore/internal/config"
	"zeelore/internal/logger"
)

var (
	flagDataDir  string
	flagValidate bool
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	root := &cobra.Command{
		Use:   "zeelore",
		Short: "Explorer for Sunless Sea data dumps",
		Long: "zeelore reads a game data export and renders its qualities, locations,\n" +
			"events and shops as plain text, quick listings or wiki markup.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", cfg.DataDir, "Game data directory")
	root.PersistentFlags().BoolVar(&flagValidate, "validate", false, "Enable log-only schema validation while building the graph")

	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(dumpCmd())
	root.AddCommand(wikiCmd(cfg))
	root.AddCommand(usageCmd())
	root.AddCommand(saveCmd(cfg))
	root.AddCommand(demoCmd())

	if err := root.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
