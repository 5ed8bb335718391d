package lore

import (
	"fmt"
	"strings"

	"zeelore/pkg/render"
)

// The four outcome slots of an action, in fixed priority order. Rendering
// and iteration always follow this order regardless of which subset a
// record carries.
var outcomeSlots = []string{
	"DefaultEvent",
	"RareDefaultEvent",
	"SuccessEvent",
	"RareSuccessEvent",
}

// Ref is a resolve-now, patch-later reference: either resolved to a real
// entity or holding a placeholder built from the raw ID. A reconciliation
// pass after all collections exist repairs placeholders whose target turned
// out to load later. Once resolved, a Ref never re-resolves.
type Ref[T any] struct {
	id       int
	target   *T
	resolved bool
}

func resolvedRef[T any](id int, target *T) Ref[T] {
	return Ref[T]{id: id, target: target, resolved: true}
}

func placeholderRef[T any](id int, target *T) Ref[T] {
	return Ref[T]{id: id, target: target}
}

func (r *Ref[T]) ID() int        { return r.id }
func (r *Ref[T]) Get() *T        { return r.target }
func (r *Ref[T]) Resolved() bool { return r.resolved }

func (r *Ref[T]) repair(target *T) {
	if r.resolved {
		return
	}
	r.target = target
	r.resolved = true
}

// baseEvent carries what Event, Action and Outcome share: identity, the
// requirement and effect lists, and the structural parent.
type baseEvent struct {
	Meta
	world        *World
	parent       Entity // nil for root events
	requirements []*Requirement
	effects      []*Effect
}

// attachOperators builds the requirement/effect lists a kind carries.
// Events take both, actions only requirements, outcomes only effects.
func (b *baseEvent) attachOperators(raw Raw, owner Entity, requirements, effects bool) {
	w := b.world
	if requirements {
		seen := make(map[int]bool)
		for _, item := range raw.List("QualitiesRequired") {
			req := &Requirement{QualityOperator: w.newOperator(item, owner)}
			if w.opts.Validate && seen[req.qualityID] {
				w.log.Warn("duplicate quality in requirement list",
					"quality", req.qualityID, "owner", owner.ID())
			}
			seen[req.qualityID] = true
			b.requirements = append(b.requirements, req)
		}
	}
	if effects {
		seen := make(map[int]bool)
		for _, item := range raw.List("QualitiesAffected") {
			eff := &Effect{QualityOperator: w.newOperator(item, owner)}
			if w.opts.Validate && seen[eff.qualityID] {
				w.log.Warn("duplicate quality in effect list",
					"quality", eff.qualityID, "owner", owner.ID())
			}
			seen[eff.qualityID] = true
			b.effects = append(b.effects, eff)
		}
	}
}

// checkParent verifies the record's declared parent ID against the
// structural parent. Log-only, like all opt-in validation.
func (b *baseEvent) checkParent(raw Raw) {
	if !b.world.opts.Validate || !raw.Has("ParentEvent") {
		return
	}
	declared := raw.Map("ParentEvent").Int("Id")
	switch {
	case b.parent == nil:
		b.world.log.Warn("record declares a parent but has none",
			"id", b.id, "declared", declared)
	case b.parent.ID() != declared:
		b.world.log.Warn("parent ID mismatch",
			"id", b.id, "parent", b.parent.ID(), "declared", declared)
	}
}

func (b *baseEvent) Requirements() []*Requirement { return b.requirements }
func (b *baseEvent) Effects() []*Effect           { return b.effects }
func (b *baseEvent) Parent() Entity               { return b.parent }

func (b *baseEvent) pretty() string {
	var sb strings.Builder
	sb.WriteString(b.prettyHeader())
	if b.description != "" {
		fmt.Fprintf(&sb, "\t%s\n", desc(b.description))
	}
	if len(b.requirements) > 0 {
		fmt.Fprintf(&sb, "\tRequirements: %d\n", len(b.requirements))
		for _, req := range b.requirements {
			sb.WriteString(indent(req.Pretty(), 2) + "\n")
		}
	}
	if len(b.effects) > 0 {
		fmt.Fprintf(&sb, "\tEffects: %d\n", len(b.effects))
		for _, eff := range b.effects {
			sb.WriteString(indent(eff.Pretty(), 2) + "\n")
		}
	}
	return sb.String()
}

// Event is a root narrative node, optionally bound to one location.
type Event struct {
	baseEvent
	location *Location
	actions  []*Action
}

func (w *World) newEvent(raw Raw, idx int) *Event {
	if w.opts.Validate {
		validateFields("event", raw, w.log)
	}

	e := &Event{baseEvent: baseEvent{Meta: newMeta(raw, idx), world: w}}
	e.attachOperators(raw, e, true, true)

	if raw.Has("LimitedToArea") {
		stub := raw.Map("LimitedToArea")
		lid := stub.Int("Id")
		if loc, ok := w.Locations.Get(lid); ok {
			e.location = loc
		} else {
			w.log.Warn("location reference not found", "location", lid, "event", e.id)
			e.location = placeholderLocation(stub)
		}
	}

	for i, item := range raw.List("ChildBranches") {
		e.actions = append(e.actions, w.newAction(item, i+1, e))
	}
	return e
}

// placeholderEvent stands in for an outcome trigger whose target event does
// not exist in the loaded data. It has no actions or requirements.
func placeholderEvent(id int, w *World) *Event {
	return &Event{baseEvent: baseEvent{Meta: Meta{id: id, raw: Raw{"Id": id}}, world: w}}
}

func (e *Event) Location() *Location { return e.location }
func (e *Event) Actions() []*Action  { return e.actions }

func (e *Event) Pretty() string {
	var b strings.Builder
	b.WriteString(e.pretty())
	if e.location != nil {
		fmt.Fprintf(&b, "\tLocation: %s\n", e.location.Bare())
	}
	if len(e.actions) > 0 {
		fmt.Fprintf(&b, "\n\tActions: %d", len(e.actions))
		for _, a := range e.actions {
			b.WriteString("\n" + indent(a.Pretty(), 2) + "\n")
		}
	}
	return b.String()
}

func (e *Event) WikiPage() string {
	var b strings.Builder
	b.WriteString(e.Meta.WikiPage())
	if e.location != nil {
		fmt.Fprintf(&b, "* Location: [[%s]]\n", wikiName(e.location.Name(), e.location.ID()))
	}
	for _, req := range e.requirements {
		fmt.Fprintf(&b, "* Requires: %s\n", req.Wiki())
	}
	for _, eff := range e.effects {
		fmt.Fprintf(&b, "* Effect: %s\n", eff.Wiki())
	}
	for _, a := range e.actions {
		b.WriteString(a.wikiSection())
	}
	return b.String()
}

// Action is a player-choosable branch within an event.
type Action struct {
	baseEvent
	outcomes []*Outcome
}

func (w *World) newAction(raw Raw, idx int, parent *Event) *Action {
	if w.opts.Validate {
		validateFields("action", raw, w.log)
	}

	a := &Action{baseEvent: baseEvent{Meta: newMeta(raw, idx), world: w, parent: parent}}
	a.attachOperators(raw, a, true, false)
	a.checkParent(raw)

	for _, slot := range outcomeSlots {
		if !raw.Has(slot) {
			continue
		}
		a.outcomes = append(a.outcomes,
			w.newOutcome(raw.Map(slot), a, slot, raw.Int(slot+"Chance")))
	}
	return a
}

func (a *Action) Outcomes() []*Outcome { return a.outcomes }

// CanFail reports whether the action has a success branch, meaning its
// default branch is a failure.
func (a *Action) CanFail() bool {
	for _, o := range a.outcomes {
		if o.slot == "SuccessEvent" {
			return true
		}
	}
	return false
}

func (a *Action) Pretty() string {
	var b strings.Builder
	b.WriteString(a.pretty())
	for _, o := range a.outcomes {
		chance := ""
		if o.chance > 0 {
			chance = fmt.Sprintf(" %d%%", o.chance)
		}
		fmt.Fprintf(&b, "\n\t%s:%s\n", o.slot, chance)
		b.WriteString(indent(o.Pretty(), 2))
	}
	return b.String()
}

func (a *Action) wikiSection() string {
	var b strings.Builder
	fmt.Fprintf(&b, "==%s==\n", render.WikiTitle(wikiName(a.name, a.id)))
	for _, req := range a.requirements {
		fmt.Fprintf(&b, "* Requires: %s\n", req.Wiki())
	}
	for _, o := range a.outcomes {
		fmt.Fprintf(&b, "===%s===\n", o.slot)
		if o.chance > 0 {
			fmt.Fprintf(&b, "* Chance: %d%%\n", o.chance)
		}
		for _, eff := range o.effects {
			fmt.Fprintf(&b, "* Effect: %s\n", eff.Wiki())
		}
		if trigger := o.Trigger(); trigger != nil {
			fmt.Fprintf(&b, "* Triggers: [[%s]]\n", wikiName(trigger.Name(), trigger.ID()))
		}
	}
	return b.String()
}

// Outcome is one resolution branch of an action.
type Outcome struct {
	baseEvent
	slot    string
	chance  int // trigger probability 0-100, 0 when absent
	trigger *Ref[Event]
}

func (w *World) newOutcome(raw Raw, parent *Action, slot string, chance int) *Outcome {
	if w.opts.Validate {
		validateFields("outcome", raw, w.log)
	}

	o := &Outcome{
		baseEvent: baseEvent{Meta: newMeta(raw, 0), world: w, parent: parent},
		slot:      slot,
		chance:    chance,
	}
	o.attachOperators(raw, o, false, true)
	o.checkParent(raw)

	if raw.Has("LinkToEvent") {
		tid := raw.Map("LinkToEvent").Int("Id")
		// Events may link forward to events not yet constructed; register
		// for the repair pass instead of resolving against a half-built
		// collection.
		ref := placeholderRef(tid, placeholderEvent(tid, w))
		o.trigger = &ref
		w.pendingTriggers = append(w.pendingTriggers, o)
	}
	return o
}

func (o *Outcome) Slot() string { return o.slot }
func (o *Outcome) Chance() int  { return o.chance }

// Trigger returns the event this outcome fires, or nil when the outcome has
// no trigger. After the repair pass the result is always a real or
// placeholder Event, never absent for a record that declared one.
func (o *Outcome) Trigger() *Event {
	if o.trigger == nil {
		return nil
	}
	return o.trigger.Get()
}

// TriggerRef exposes the underlying reference, mainly so callers can tell a
// placeholder trigger from a resolved one.
func (o *Outcome) TriggerRef() *Ref[Event] { return o.trigger }

func (o *Outcome) Pretty() string {
	var b strings.Builder
	b.WriteString(o.pretty())
	if o.trigger != nil {
		fmt.Fprintf(&b, "\tTrigger event: %s\n", o.trigger.Get().Bare())
	}
	return b.String()
}
