package lore

import (
	"fmt"
	"log/slog"
	"strings"
)

// Location is a place in the game world. Setting is not part of the source
// record: geography enrichment assigns it once after all locations exist.
type Location struct {
	Meta
	moveMessage string
	setting     int // 0 until geography enrichment runs
}

func newLocation(raw Raw, idx int, log *slog.Logger, validate bool) *Location {
	if validate {
		validateFields("location", raw, log)
	}
	return &Location{
		Meta:        newMeta(raw, idx),
		moveMessage: raw.Str("MoveMessage"),
	}
}

// placeholderLocation wraps the inline LimitedToArea stub of an event whose
// real Location is not in the loaded data.
func placeholderLocation(raw Raw) *Location {
	return &Location{Meta: newMeta(raw, 0)}
}

func (l *Location) MoveMessage() string { return l.moveMessage }

// Setting returns the geographic grouping ID, or 0 if the location appears
// in no tile's port data.
func (l *Location) Setting() int { return l.setting }

// assignSetting records the setting discovered during geography enrichment.
// First assignment wins; a conflicting second one is logged and dropped.
func (l *Location) assignSetting(setting int, log *slog.Logger) {
	if l.setting != 0 && l.setting != setting {
		log.Warn("location already assigned to a setting",
			"location", l.id, "setting", l.setting, "conflicting", setting)
		return
	}
	l.setting = setting
}

func (l *Location) Pretty() string {
	var b strings.Builder
	b.WriteString(l.prettyHeader())
	fmt.Fprintf(&b, "\t%s\n", desc(l.moveMessage))
	fmt.Fprintf(&b, "\t%s\n", desc(l.description))
	return b.String()
}
