package lore

import (
	"log/slog"
	"strconv"
	"strings"

	"zeelore/pkg/advanced"
	"zeelore/pkg/render"
)

// Data is the raw record sets the loader hands over, in file order.
type Data struct {
	Qualities []Raw
	Areas     []Raw
	Events    []Raw
	Exchanges []Raw
	Tiles     []Raw
}

// Options tune graph construction. The zero value is the default: no
// structural validation, which matches how the game itself reads the dumps.
type Options struct {
	// Validate enables the log-only schema checks: per-kind field
	// contracts, duplicate quality references, parent-ID consistency and
	// the area-setting geography invariant.
	Validate bool
}

// World is the registry of all entity collections. Construction runs in
// dependency order (qualities, locations, geography, events, trigger
// repair, shops); after New returns the graph is read-only.
type World struct {
	Qualities *Collection[*Quality]
	Locations *Collection[*Location]
	Events    *Collection[*Event]
	Shops     *Collection[*Shop]

	settings map[int][]*Location // setting ID → member locations

	opts Options
	log  *slog.Logger

	plain *dialect
	wiki  *dialect

	pendingTriggers []*Outcome
}

// dialect pairs a render style with the advanced-string interpreter bound
// to it. The world keeps one per output dialect.
type dialect struct {
	style *render.Style
	adv   *advanced.Interpreter
}

func New(data *Data, opts Options, log *slog.Logger) *World {
	w := &World{
		Qualities: NewCollection[*Quality](),
		Locations: NewCollection[*Location](),
		Events:    NewCollection[*Event](),
		Shops:     NewCollection[*Shop](),
		settings:  make(map[int][]*Location),
		opts:      opts,
		log:       log,
	}
	w.plain = w.newDialect(render.Plain)
	w.wiki = w.newDialect(render.Wiki)

	for i, raw := range data.Qualities {
		w.Qualities.add(newQuality(raw, i+1, log, opts.Validate))
	}
	for i, raw := range data.Areas {
		w.Locations.add(newLocation(raw, i+1, log, opts.Validate))
	}
	w.enrichGeography(data.Tiles)
	for i, raw := range data.Events {
		w.Events.add(w.newEvent(raw, i+1))
	}
	w.repairTriggers()
	w.buildShops(data.Exchanges)

	return w
}

// newDialect builds the advanced-string interpreter for one style. The
// handlers close over the world so quality references resolve against the
// live registry.
func (w *World) newDialect(st *render.Style) *dialect {
	it := advanced.New(w.log)

	it.Handle('q', func(value string) (string, bool) {
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			// A non-numeric value is a literal quality name; no lookup.
			return render.Expand(st.QualityNamed, map[string]string{"name": value}), true
		}
		if q, ok := w.Qualities.Get(id); ok {
			return render.Expand(st.Quality, map[string]string{
				"name": q.Name(), "id": strconv.Itoa(id),
			}), true
		}
		w.log.Warn("quality reference not found in advanced string", "quality", id)
		return render.Expand(st.QualityMissing, map[string]string{
			"id": strconv.Itoa(id),
		}), true
	})

	it.Handle('d', func(value string) (string, bool) {
		return render.Expand(st.Dice, map[string]string{
			"text": it.Expand(value),
		}), true
	})

	return &dialect{style: st, adv: it}
}

// Advanced expands the inline reference tokens of free text in the plain
// dialect.
func (w *World) Advanced(text string) string {
	return w.plain.adv.Expand(text)
}

// AdvancedWiki expands the inline reference tokens of free text in the wiki
// dialect.
func (w *World) AdvancedWiki(text string) string {
	return w.wiki.adv.Expand(text)
}

// enrichGeography is the second construction phase for locations: every
// tile's port data yields (location, setting) pairs, each location gets its
// setting assigned once, and the setting → locations index is built for the
// shop join.
func (w *World) enrichGeography(tiles []Raw) {
	areaSetting := make(map[int]int)
	settingArea := make(map[int]int)

	for _, tile := range tiles {
		for _, port := range tile.List("PortData") {
			aid := port.Map("Area").Int("Id")
			sid := port.Map("Setting").Int("Id")
			if aid == 0 || sid == 0 {
				continue
			}

			if w.opts.Validate {
				if prev, ok := areaSetting[aid]; ok && prev != sid {
					w.log.Warn("area mapped to multiple settings",
						"area", aid, "settings", []int{prev, sid})
				}
				if prev, ok := settingArea[sid]; ok && prev != aid {
					w.log.Warn("setting mapped to multiple areas",
						"setting", sid, "areas", []int{prev, aid})
				}
				areaSetting[aid] = sid
				settingArea[sid] = aid
			}

			loc, ok := w.Locations.Get(aid)
			if !ok {
				w.log.Warn("port references unknown location",
					"location", aid, "tile", tile.Str("Name"))
				continue
			}
			loc.assignSetting(sid, w.log)

			already := false
			for _, member := range w.settings[sid] {
				if member.ID() == loc.ID() {
					already = true
					break
				}
			}
			if !already {
				w.settings[sid] = append(w.settings[sid], loc)
			}
		}
	}
}

// repairTriggers is the reconciliation pass over outcome triggers. Events
// link forward to events loaded later, so every trigger starts as a
// placeholder; here each one is swapped for the real event where it exists.
// A trigger whose target is in no loaded record keeps its placeholder and
// is logged as an error.
func (w *World) repairTriggers() {
	for _, o := range w.pendingTriggers {
		if target, ok := w.Events.Get(o.trigger.ID()); ok {
			o.trigger.repair(target)
			continue
		}
		w.log.Error("outcome trigger has no target event",
			"event", o.trigger.ID(), "outcome", o.ID())
	}
	w.pendingTriggers = nil
}

func (w *World) buildShops(exchanges []Raw) {
	idx := 0
	for _, exchange := range exchanges {
		if w.opts.Validate {
			validateFields("exchange", exchange, w.log)
		}
		name := exchange.Str("Name")
		if name == "" {
			name = exchange.Str("Title")
		}
		settings := exchange.Ints("SettingIds")
		for _, raw := range exchange.List("Shops") {
			idx++
			w.Shops.add(w.newShop(raw, idx, name, settings))
		}
	}
}

// PlaceholderQuality builds a stand-in quality bearing only an ID, for
// callers outside the package that hit a dangling reference of their own.
func (w *World) PlaceholderQuality(id int) *Quality {
	return placeholderQuality(Raw{"Id": id})
}

// SettingLocations returns the locations grouped under one setting, in the
// order geography enrichment discovered them.
func (w *World) SettingLocations(setting int) []*Location {
	return w.settings[setting]
}

// EventsAt filters events by location: by ID when lid is non-zero, and by
// case-insensitive location-name pattern when name is non-empty.
func (w *World) EventsAt(lid int, name string) *Collection[*Event] {
	out := NewCollection[*Event]()
	for _, e := range w.Events.All() {
		if e.location == nil {
			continue
		}
		if lid != 0 && e.location.ID() == lid {
			out.add(e)
			continue
		}
		if name != "" && strings.Contains(
			strings.ToLower(e.location.Name()), strings.ToLower(name)) {
			out.add(e)
		}
	}
	return out
}
