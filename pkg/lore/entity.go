// Package lore builds the cross-referenced in-memory graph of a game data
// dump: qualities, locations, narrative events and their actions/outcomes,
// and shops, all linked by numeric-ID foreign keys. Missing references never
// abort construction; a placeholder entity carrying the raw ID is attached
// instead and the miss is logged.
package lore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"zeelore/pkg/render"
)

// Entity is the common contract of every graph node. All text producers are
// pure reads over the finished graph.
type Entity interface {
	ID() int
	Name() string

	Bare() string     // single line: id and name
	Pretty() string   // multi-line plain text
	WikiRow() string  // one table row of wiki markup
	WikiPage() string // standalone wiki article body
	Dump() Raw        // the retained source record
}

// Meta holds the identity fields shared by every entity kind plus the source
// record it was parsed from.
type Meta struct {
	idx         int
	id          int
	name        string
	description string
	image       string
	raw         Raw
}

func newMeta(raw Raw, idx int) Meta {
	image := raw.Str("Image")
	if image == "" {
		image = raw.Str("ImageName")
	}
	return Meta{
		idx:         idx,
		id:          raw.Int("Id"),
		name:        raw.Str("Name"),
		description: raw.Str("Description"),
		image:       image,
		raw:         raw,
	}
}

func (m *Meta) ID() int             { return m.id }
func (m *Meta) Name() string        { return m.name }
func (m *Meta) Description() string { return m.description }
func (m *Meta) Image() string       { return m.image }
func (m *Meta) Index() int          { return m.idx }
func (m *Meta) Dump() Raw           { return m.raw }

func (m *Meta) Bare() string {
	if m.name == "" {
		return strconv.Itoa(m.id)
	}
	return fmt.Sprintf("%d\t%s", m.id, m.name)
}

// prettyHeader is the first line shared by every kind's Pretty.
func (m *Meta) prettyHeader() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", m.id)
	if m.name != "" {
		fmt.Fprintf(&b, " - %s", m.name)
	}
	if m.image != "" {
		fmt.Fprintf(&b, " (%s)", m.image)
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *Meta) Pretty() string { return m.prettyHeader() }

func (m *Meta) WikiRow() string {
	return fmt.Sprintf("|-\n"+
		"| %d\n"+
		"| %d\n"+
		"| [[%s]]\n"+
		"| {{game icon|%s}}\n"+
		"| <nowiki>%s</nowiki>\n",
		m.idx, m.id, m.name, m.image, m.description)
}

func (m *Meta) WikiPage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=%s=\n", render.WikiTitle(wikiName(m.name, m.id)))
	if m.image != "" {
		fmt.Fprintf(&b, "{{game icon|%s}}\n", m.image)
	}
	if m.description != "" {
		fmt.Fprintf(&b, "%s\n", m.description)
	}
	return b.String()
}

// desc quotes and truncates a description for one-line display, replacing
// control characters with their escapes. The cut never splits a rune.
func desc(text string) string {
	const cut, ellipsis = 80, "(...)"
	if len(text) > cut {
		limit := cut - len(ellipsis)
		for limit > 0 && !utf8.RuneStart(text[limit]) {
			limit--
		}
		text = text[:limit] + ellipsis
	}
	return strconv.Quote(text)
}

func wikiName(name string, id int) string {
	if name == "" {
		return strconv.Itoa(id)
	}
	return name
}

// dumpJSON renders a retained record back to indented JSON for dump output.
func dumpJSON(raw Raw) string {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(raw))
	}
	return string(data)
}

// indent prefixes every line of text with level tab stops, trimming trailing
// whitespace as a side effect.
func indent(text string, level int) string {
	if level == 0 {
		return text
	}
	pad := strings.Repeat("\t", level)
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")
	return pad + strings.Join(lines, "\n"+pad)
}
