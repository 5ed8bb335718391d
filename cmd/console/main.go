package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zeelore/internal/config"
	"zeelore/internal/datafiles"
	"zeelore/internal/logger"
	"zeelore/pkg/lore"
)

func main() {
	cfg := config.Load()
	log := logger.Quiet()

	loader := datafiles.New(cfg.DataDir, log)
	world := lore.New(loader.LoadWorldData(), lore.Options{}, log)

	if world.Qualities.Len() == 0 && world.Events.Len() == 0 {
		fmt.Fprintf(os.Stderr, "No data found in %s.\nSet ZEELORE_DATA_DIR to the game data directory.\n", cfg.DataDir)
		os.Exit(1)
	}

	p := tea.NewProgram(NewBrowserUI(world), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// kinds are the browsable collections, cycled with tab.
var kinds = []string{"qualities", "locations", "events", "shops"}

// entities returns one kind's filtered entities behind the common interface.
func entities(w *lore.World, kind, filter string) []lore.Entity {
	switch kind {
	case "qualities":
		return toEntities(w.Qualities.Find(filter).All())
	case "locations":
		return toEntities(w.Locations.Find(filter).All())
	case "events":
		return toEntities(w.Events.Find(filter).All())
	case "shops":
		return toEntities(w.Shops.Find(filter).All())
	}
	return nil
}

func toEntities[E lore.Entity](items []E) []lore.Entity {
	out := make([]lore.Entity, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
