package lore

import (
	"regexp"
	"strings"
)

// Collection is an ordered, ID-indexed container of one entity kind.
// Insertion order is preserved for iteration and slicing; lookups go through
// the ID index. A Collection is read-only after construction.
type Collection[E Entity] struct {
	order []E
	byID  map[int]E
}

func NewCollection[E Entity](entities ...E) *Collection[E] {
	c := &Collection[E]{byID: make(map[int]E, len(entities))}
	for _, e := range entities {
		c.add(e)
	}
	return c
}

// add appends an entity. A duplicate ID keeps both in iteration order but the
// later entity wins lookups, matching the source dumps' own behavior.
func (c *Collection[E]) add(e E) {
	c.byID[e.ID()] = e
	c.order = append(c.order, e)
}

// Get looks an entity up by ID. It never panics; the boolean reports a hit.
func (c *Collection[E]) Get(id int) (E, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Find filters by name, case-insensitively. The pattern is a regular
// expression; one that does not compile is matched as a literal substring.
// An empty pattern returns the collection itself.
func (c *Collection[E]) Find(pattern string) *Collection[E] {
	if pattern == "" {
		return c
	}
	match := func(name string) bool {
		return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
	}
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		match = re.MatchString
	}
	out := NewCollection[E]()
	for _, e := range c.order {
		if match(e.Name()) {
			out.add(e)
		}
	}
	return out
}

// At returns the entity at a position in insertion order.
func (c *Collection[E]) At(i int) E {
	return c.order[i]
}

// Slice returns the sub-collection covering positions [i, j) in insertion
// order. Bounds are clamped rather than panicking.
func (c *Collection[E]) Slice(i, j int) *Collection[E] {
	if i < 0 {
		i = 0
	}
	if j > len(c.order) {
		j = len(c.order)
	}
	if i >= j {
		return NewCollection[E]()
	}
	return NewCollection[E](c.order[i:j]...)
}

// All returns the entities in insertion order. Callers must not modify the
// returned slice.
func (c *Collection[E]) All() []E {
	return c.order
}

func (c *Collection[E]) Len() int {
	return len(c.order)
}

// Pretty renders every entity's multi-line form, blank-line separated.
func (c *Collection[E]) Pretty() string {
	parts := make([]string, len(c.order))
	for i, e := range c.order {
		parts[i] = e.Pretty()
	}
	return strings.Join(parts, "\n")
}

// Bare renders one line per entity.
func (c *Collection[E]) Bare() string {
	parts := make([]string, len(c.order))
	for i, e := range c.order {
		parts[i] = e.Bare()
	}
	return strings.Join(parts, "\n")
}

// Dump renders every entity's retained source record as JSON.
func (c *Collection[E]) Dump() string {
	parts := make([]string, len(c.order))
	for i, e := range c.order {
		parts[i] = dumpJSON(e.Dump())
	}
	return strings.Join(parts, "\n")
}

// WikiTable renders a sortable wiki table with one row per entity.
func (c *Collection[E]) WikiTable() string {
	var b strings.Builder
	b.WriteString("{| class=\"ss-table sortable\" style=\"width: 100%;\"\n" +
		"! Index\n" +
		"! ID\n" +
		"! Name\n" +
		"! Icon\n" +
		"! Description\n")
	for _, e := range c.order {
		b.WriteString(e.WikiRow())
	}
	b.WriteString("|-\n|}")
	return b.String()
}

// WikiPage renders every entity's standalone article, blank-line separated.
func (c *Collection[E]) WikiPage() string {
	parts := make([]string, len(c.order))
	for i, e := range c.order {
		parts[i] = e.WikiPage()
	}
	return strings.Join(parts, "\n")
}
