package lore

import (
	"fmt"
	"strings"
)

// UsageMode controls how many references the usage scan reports per event.
type UsageMode int

const (
	// FirstMatch reports at most one reference per event, the first found
	// walking the event, its actions and their outcomes in order.
	FirstMatch UsageMode = iota
	// AllMatches reports every reference.
	AllMatches
)

// UsageHit is one place a quality is referenced from.
type UsageHit struct {
	Event *Event // nil for shop references
	Shop  *Shop  // nil for event references
	Path  string // where within the owner, e.g. "action 2 requirement"
}

// Usage scans the whole graph for references to a quality: requirement and
// effect lists of events, actions and outcomes, plus shop items trading or
// priced in it.
func (w *World) Usage(q *Quality, mode UsageMode) []UsageHit {
	var hits []UsageHit

	for _, e := range w.Events.All() {
		w.scanEvent(e, q, mode, &hits)
	}

	for _, s := range w.Shops.All() {
		for _, item := range s.items {
			if item.item.ID() == q.ID() {
				hits = append(hits, UsageHit{Shop: s, Path: "item"})
				if mode == FirstMatch {
					break
				}
			}
			if item.currency.ID() == q.ID() {
				hits = append(hits, UsageHit{Shop: s, Path: "currency"})
				if mode == FirstMatch {
					break
				}
			}
		}
	}

	return hits
}

// scanEvent collects the references inside one event tree. In FirstMatch
// mode it stops at the first hit.
func (w *World) scanEvent(e *Event, q *Quality, mode UsageMode, hits *[]UsageHit) bool {
	found := false
	add := func(path string) bool {
		*hits = append(*hits, UsageHit{Event: e, Path: path})
		found = true
		return mode == FirstMatch
	}

	for _, req := range e.requirements {
		if req.qualityID == q.ID() && add("event requirement") {
			return true
		}
	}
	for _, eff := range e.effects {
		if eff.qualityID == q.ID() && add("event effect") {
			return true
		}
	}
	for _, a := range e.actions {
		for _, req := range a.requirements {
			if req.qualityID == q.ID() && add(fmt.Sprintf("action %d requirement", a.Index())) {
				return true
			}
		}
		for _, o := range a.outcomes {
			for _, eff := range o.effects {
				if eff.qualityID == q.ID() && add(fmt.Sprintf("action %d %s effect", a.Index(), o.slot)) {
					return true
				}
			}
		}
	}
	return found
}

// UsageReport renders the scan as one line per hit.
func (w *World) UsageReport(q *Quality, mode UsageMode) string {
	hits := w.Usage(q, mode)
	if len(hits) == 0 {
		return fmt.Sprintf("%s: not referenced", q.Bare())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d references\n", q.Bare(), len(hits))
	for _, hit := range hits {
		switch {
		case hit.Event != nil:
			fmt.Fprintf(&b, "\tevent %s: %s\n", hit.Event.Bare(), hit.Path)
		case hit.Shop != nil:
			fmt.Fprintf(&b, "\tshop %s: %s\n", hit.Shop.Bare(), hit.Path)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
