// Package save reads and edits the player save file's quality records. The
// save is the only mutable state in the system: SetLevel writes through to
// the retained raw record so the edited save marshals back field-for-field.
package save

import (
	"fmt"
	"log/slog"
	"strconv"

	"zeelore/pkg/lore"
)

// State wraps one decoded save record.
type State struct {
	raw       lore.Raw
	Qualities *lore.Collection[*SaveQuality]
}

// SaveQuality is one live player-state record: a quality the player
// possesses, its base level and an additive modifier.
type SaveQuality struct {
	quality  *lore.Quality
	level    int
	modifier int
	raw      lore.Raw
}

// New indexes the save's possessed-quality list, resolving each entry
// against the world's quality registry. Entries referencing a quality
// missing from the loaded data keep a placeholder, like every other
// dangling reference.
func New(raw lore.Raw, w *lore.World, log *slog.Logger) *State {
	s := &State{raw: raw}

	var entries []*SaveQuality
	for _, item := range raw.List("QualitiesPossessedList") {
		qid := item.Int("AssociatedQualityId")
		q, ok := w.Qualities.Get(qid)
		if !ok {
			log.Warn("save references unknown quality", "quality", qid)
			q = w.PlaceholderQuality(qid)
		}
		entries = append(entries, &SaveQuality{
			quality:  q,
			level:    item.Int("Level"),
			modifier: item.Int("EffectiveLevelModifier"),
			raw:      item,
		})
	}
	s.Qualities = lore.NewCollection(entries...)
	return s
}

// Raw returns the underlying save record, including every field this
// package does not model, for writing back to disk.
func (s *State) Raw() lore.Raw { return s.raw }

func (sq *SaveQuality) Quality() *lore.Quality { return sq.quality }
func (sq *SaveQuality) Level() int             { return sq.level }
func (sq *SaveQuality) Modifier() int          { return sq.modifier }

// EffectiveLevel is the level the game plays with: base plus modifier.
func (sq *SaveQuality) EffectiveLevel() int {
	return sq.level + sq.modifier
}

// SetLevel changes the base level in both the typed record and the retained
// raw save structure, keeping the two views consistent for round-trip.
func (sq *SaveQuality) SetLevel(level int) {
	sq.level = level
	sq.raw["Level"] = level
}

// lore.Entity implementation, so save qualities reuse the collection
// machinery (find, get, slicing, bulk rendering).

func (sq *SaveQuality) ID() int        { return sq.quality.ID() }
func (sq *SaveQuality) Name() string   { return sq.quality.Name() }
func (sq *SaveQuality) Dump() lore.Raw { return sq.raw }

func (sq *SaveQuality) Bare() string {
	name := sq.quality.Name()
	if name == "" {
		name = strconv.Itoa(sq.quality.ID())
	}
	if sq.modifier != 0 {
		return fmt.Sprintf("%d\t%s = %d (%+d)", sq.quality.ID(), name, sq.level, sq.modifier)
	}
	return fmt.Sprintf("%d\t%s = %d", sq.quality.ID(), name, sq.level)
}

func (sq *SaveQuality) Pretty() string {
	var status string
	if text, ok := sq.quality.LevelDescription(sq.EffectiveLevel()); ok {
		status = fmt.Sprintf("\t\t%s\n", text)
	}
	return sq.Bare() + "\n" + status
}

func (sq *SaveQuality) WikiRow() string {
	return fmt.Sprintf("|-\n| %d\n| [[%s]]\n| %d\n| %d\n",
		sq.quality.ID(), sq.quality.Name(), sq.level, sq.modifier)
}

func (sq *SaveQuality) WikiPage() string {
	return fmt.Sprintf("==%s==\nLevel %d (%+d modifier)\n",
		sq.quality.Name(), sq.level, sq.modifier)
}
