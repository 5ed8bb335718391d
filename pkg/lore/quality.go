package lore

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CategoryLuck marks the one stat whose difficulty checks use the linear
// chance formula instead of the scaler division.
const CategoryLuck = 2000

// reversedName matches qualities whose scale reads inverted in game text:
// menaces grow when things get worse, so their deltas render in parentheses
// rather than as an explicit signed gain.
var reversedName = regexp.MustCompile(`(?i)\b(terror|hunger|menaces)\b`)

// Quality is a player stat, flag or resource.
type Quality struct {
	Meta
	category int
	nature   int
	cap      int
	scaler   int // DifficultyScaler
	tag      string

	level      map[int]string // journal description per level
	change     map[int]string // change description per level
	levelImage map[int]string // image variant per level
}

func newQuality(raw Raw, idx int, log *slog.Logger, validate bool) *Quality {
	if validate {
		validateFields("quality", raw, log)
	}
	return &Quality{
		Meta:       newMeta(raw, idx),
		category:   raw.Int("Category"),
		nature:     raw.Int("Nature"),
		cap:        raw.Int("Cap"),
		scaler:     raw.Int("DifficultyScaler"),
		tag:        raw.Str("Tag"),
		level:      parseStatus(raw.Str("LevelDescriptionText"), log),
		change:     parseStatus(raw.Str("ChangeDescriptionText"), log),
		levelImage: parseStatus(raw.Str("LevelImageText"), log),
	}
}

// placeholderQuality wraps the inline AssociatedQuality stub of a record
// whose real Quality is not in the loaded data.
func placeholderQuality(raw Raw) *Quality {
	return &Quality{Meta: newMeta(raw, 0)}
}

// parseStatus decodes the "level|text~level|text" wire encoding of the
// sparse per-level description fields.
func parseStatus(value string, log *slog.Logger) map[int]string {
	if value == "" {
		return nil
	}
	statuses := make(map[int]string)
	for _, row := range strings.Split(value, "~") {
		level, text, ok := strings.Cut(row, "|")
		if !ok {
			log.Warn("malformed status row", "row", row)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(level))
		if err != nil {
			log.Warn("malformed status level", "row", row, "error", err)
			continue
		}
		statuses[n] = text
	}
	return statuses
}

func (q *Quality) Category() int         { return q.category }
func (q *Quality) Nature() int           { return q.nature }
func (q *Quality) Cap() int              { return q.cap }
func (q *Quality) DifficultyScaler() int { return q.scaler }
func (q *Quality) Tag() string           { return q.tag }

// LevelDescription returns the journal text for an exact level, if any.
func (q *Quality) LevelDescription(level int) (string, bool) {
	s, ok := q.level[level]
	return s, ok
}

// ChangeDescription returns the change text for an exact level, if any.
func (q *Quality) ChangeDescription(level int) (string, bool) {
	s, ok := q.change[level]
	return s, ok
}

// LevelImage returns the image variant for an exact level, if any.
func (q *Quality) LevelImage(level int) (string, bool) {
	s, ok := q.levelImage[level]
	return s, ok
}

// IsLuck reports whether difficulty checks against this quality use the
// linear chance formula.
func (q *Quality) IsLuck() bool {
	return q.category == CategoryLuck
}

// Reversed reports whether this quality reads on an inverted scale.
func (q *Quality) Reversed() bool {
	return reversedName.MatchString(q.name)
}

func (q *Quality) Pretty() string {
	var b strings.Builder
	b.WriteString(q.prettyHeader())
	for _, group := range []struct {
		caption  string
		statuses map[int]string
	}{
		{"Journal Descriptions", q.level},
		{"Change Descriptions", q.change},
		{"Images", q.levelImage},
	} {
		if len(group.statuses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\t%s: %d\n", group.caption, len(group.statuses))
		levels := make([]int, 0, len(group.statuses))
		for level := range group.statuses {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Fprintf(&b, "\t\t[%d] - %s\n", level, group.statuses[level])
		}
	}
	return b.String()
}
