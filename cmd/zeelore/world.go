package main

import (
	"fmt"
	"log/slog"

	"zeelore/internal/datafiles"
	"zeelore/pkg/lore"
)

// entityKinds are the graph collections addressable from the command line.
var entityKinds = []string{"qualities", "locations", "events", "shops"}

func buildWorld() (*lore.World, *datafiles.Loader) {
	loader := datafiles.New(flagDataDir, slog.Default())
	data := loader.LoadWorldData()
	world := lore.New(data, lore.Options{Validate: flagValidate}, slog.Default())
	return world, loader
}

// renderKind resolves a kind argument and renders the matching entities in
// one of the bulk formats.
func renderKind(w *lore.World, kind, filter, format string) (string, error) {
	switch kind {
	case "qualities":
		return renderCollection(w.Qualities.Find(filter), format)
	case "locations":
		return renderCollection(w.Locations.Find(filter), format)
	case "events":
		return renderCollection(w.Events.Find(filter), format)
	case "shops":
		return renderCollection(w.Shops.Find(filter), format)
	}
	return "", fmt.Errorf("unknown entity kind %q (want one of %v)", kind, entityKinds)
}

func renderCollection[E lore.Entity](c *lore.Collection[E], format string) (string, error) {
	switch format {
	case "bare":
		return c.Bare(), nil
	case "pretty":
		return c.Pretty(), nil
	case "dump":
		return c.Dump(), nil
	case "wikitable":
		return c.WikiTable(), nil
	case "wikipage":
		return c.WikiPage(), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func argsKindFilter(args []string) (string, string) {
	kind := "events"
	filter := ""
	if len(args) > 0 {
		kind = args[0]
	}
	if len(args) > 1 {
		filter = args[1]
	}
	return kind, filter
}
