package lore

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"zeelore/pkg/render"
)

// Fixed processing order per operator variant. Clause order in rendered
// output follows these lists, never the record's native key order.
var (
	effectOps = []string{
		"Level", "ChangeByAdvanced",
		"SetToExactly", "SetToExactlyAdvanced",
		"OnlyIfAtLeast", "OnlyIfNoMoreThan",
	}
	requirementOps = []string{
		"DifficultyLevel", "DifficultyAdvanced",
		"MinLevel", "MinAdvanced",
		"MaxLevel", "MaxAdvanced",
	}
)

// Keys of an operator record that are identity, not operator codes.
var notOpKeys = map[string]bool{
	"Id":                true,
	"AssociatedQuality": true,
}

// Operator codes that carry UI state and are never rendered.
var hiddenOps = map[string]bool{
	"VisibleWhenRequirementFailed":       true,
	"BranchVisibleWhenRequirementFailed": true,
}

// Mutually exclusive code pairs: an absolute set and a relative change on
// the same quality cannot both apply.
var exclusiveOps = [][2]string{
	{"Level", "SetToExactly"},
	{"ChangeByAdvanced", "SetToExactlyAdvanced"},
}

// QualityOperator references one Quality and a set of operator codes acting
// on it. Effect and Requirement share the structure; only the fixed code
// list and the clause rules differ.
type QualityOperator struct {
	id        int
	quality   *Quality
	qualityID int
	resolved  bool
	ops       map[string]any
	world     *World
}

// Effect changes a quality's value.
type Effect struct {
	QualityOperator
}

// Requirement gates availability on a quality's value or runs a difficulty
// check against it.
type Requirement struct {
	QualityOperator
}

func (w *World) newOperator(raw Raw, owner Entity) QualityOperator {
	if w.opts.Validate {
		validateFields("operator", raw, w.log)
	}

	op := QualityOperator{
		id:    raw.Int("Id"),
		ops:   make(map[string]any, len(raw)),
		world: w,
	}
	for _, key := range raw.Keys() {
		if !notOpKeys[key] {
			op.ops[key] = raw[key]
		}
	}

	stub := raw.Map("AssociatedQuality")
	op.qualityID = stub.Int("Id")
	if q, ok := w.Qualities.Get(op.qualityID); ok {
		op.quality = q
		op.resolved = true
	} else {
		op.quality = placeholderQuality(stub)
		w.log.Warn("quality reference not found",
			"quality", op.qualityID, "owner", owner.ID())
	}

	if w.opts.Validate {
		for _, pair := range exclusiveOps {
			if op.has(pair[0]) && op.has(pair[1]) {
				w.log.Warn("mutually exclusive operator codes",
					"codes", pair, "operator", op.id, "quality", op.qualityID)
			}
		}
	}
	return op
}

func (o *QualityOperator) Quality() *Quality { return o.quality }

func (o *QualityOperator) has(code string) bool {
	_, ok := o.ops[code]
	return ok
}

func (o *QualityOperator) opInt(code string) (int, bool) {
	switch v := o.ops[code].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func (o *QualityOperator) opStr(code string) (string, bool) {
	s, ok := o.ops[code].(string)
	return s, ok
}

// codes returns the non-hidden operator codes in sorted order.
func (o *QualityOperator) codes() []string {
	out := make([]string, 0, len(o.ops))
	for code := range o.ops {
		if !hiddenOps[code] {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// Bare renders the raw "code: value" listing without any clause logic.
func (o *QualityOperator) Bare() string {
	pairs := make([]string, 0, len(o.ops))
	for _, code := range o.codes() {
		pairs = append(pairs, fmt.Sprintf("%s: %s", code, opValue(o.ops[code])))
	}
	return fmt.Sprintf("%s [%s]", o.quality.Bare(), strings.Join(pairs, ", "))
}

// qualityRef renders the subject quality in the given dialect.
func (o *QualityOperator) qualityRef(st *render.Style) string {
	if !o.resolved {
		return render.Expand(st.QualityMissing, map[string]string{
			"id": strconv.Itoa(o.qualityID),
		})
	}
	return render.Expand(st.Quality, map[string]string{
		"name": o.quality.Name(),
		"id":   strconv.Itoa(o.quality.ID()),
	})
}

// challengeChance converts a difficulty-check value to a win-probability
// percentage. Luck uses a linear formula; everything else divides by the
// quality's difficulty scaler, falling back to the raw value when the
// scaler is zero.
func (o *QualityOperator) challengeChance(value int) int {
	if o.quality.IsLuck() {
		return 50 - value*o.quality.scaler
	}
	if o.quality.scaler == 0 {
		return value
	}
	return int(math.Ceil(100 * float64(value) / float64(o.quality.scaler)))
}

// fallbackClauses renders every code outside the fixed list through the
// generic template. Advanced-named codes run through the interpreter first.
func (o *QualityOperator) fallbackClauses(d *dialect, fixed []string) []string {
	inFixed := make(map[string]bool, len(fixed))
	for _, code := range fixed {
		inFixed[code] = true
	}
	q := o.qualityRef(d.style)

	var clauses []string
	for _, code := range o.codes() {
		if inFixed[code] {
			continue
		}
		value := opValue(o.ops[code])
		if strings.Contains(code, "Advanced") {
			value = d.adv.Expand(value)
		}
		clauses = append(clauses, render.Expand(d.style.Operator, map[string]string{
			"quality": q, "code": code, "value": value,
		}))
	}
	return clauses
}

func (e *Effect) Pretty() string { return e.Render(e.world.plain) }
func (e *Effect) Wiki() string   { return e.Render(e.world.wiki) }

// Render turns the effect's operator codes into dialect clauses. Threshold
// gates accumulate separately and trail the main clauses as an "only if"
// group.
func (e *Effect) Render(d *dialect) string {
	st := d.style
	q := e.qualityRef(st)

	gainTmpl := st.Gain
	if e.quality.Reversed() {
		gainTmpl = st.GainRev
	}

	var clauses, gates []string
	for _, code := range effectOps {
		if !e.has(code) {
			continue
		}
		value := opValue(e.ops[code])
		switch code {
		case "Level":
			clauses = append(clauses, render.Expand(gainTmpl,
				map[string]string{"quality": q, "value": value}))
		case "ChangeByAdvanced":
			clauses = append(clauses, render.Expand(gainTmpl,
				map[string]string{"quality": q, "value": d.adv.Expand(value)}))
		case "SetToExactly":
			clauses = append(clauses, render.Expand(st.SetTo,
				map[string]string{"quality": q, "value": value}))
		case "SetToExactlyAdvanced":
			clauses = append(clauses, render.Expand(st.SetTo,
				map[string]string{"quality": q, "value": d.adv.Expand(value)}))
		case "OnlyIfAtLeast":
			gates = append(gates, render.Expand(st.AtLeast,
				map[string]string{"quality": q, "value": value}))
		case "OnlyIfNoMoreThan":
			gates = append(gates, render.Expand(st.AtMost,
				map[string]string{"quality": q, "value": value}))
		}
	}
	clauses = append(clauses, e.fallbackClauses(d, effectOps)...)

	out := strings.Join(clauses, st.OpSep)
	if len(gates) > 0 {
		out += st.OnlyIfPrefix + strings.Join(gates, st.OnlyIfSep)
	}
	return out
}

func (r *Requirement) Pretty() string { return r.Render(r.world.plain) }
func (r *Requirement) Wiki() string   { return r.Render(r.world.wiki) }

// Render turns the requirement's operator codes into dialect clauses with
// the min/max look-ahead merges: equal thresholds collapse to "equals",
// adjacent ones to "equals X or Y".
func (r *Requirement) Render(d *dialect) string {
	st := d.style
	q := r.qualityRef(st)

	consumed := make(map[string]bool)
	var clauses []string
	for _, code := range requirementOps {
		if consumed[code] || !r.has(code) {
			continue
		}
		switch code {
		case "DifficultyLevel":
			value, _ := r.opInt(code)
			clauses = append(clauses, render.Expand(st.Challenge, map[string]string{
				"quality": q,
				"value":   strconv.Itoa(value),
				"chance":  strconv.Itoa(r.challengeChance(value)),
			}))
		case "DifficultyAdvanced":
			value, _ := r.opStr(code)
			clauses = append(clauses, render.Expand(st.ChallengeAdv, map[string]string{
				"quality": q, "value": d.adv.Expand(value),
			}))
		case "MinLevel":
			min, _ := r.opInt(code)
			max, hasMax := r.opInt("MaxLevel")
			switch {
			case hasMax && max == min:
				consumed["MaxLevel"] = true
				clauses = append(clauses, render.Expand(st.Equals, map[string]string{
					"quality": q, "value": strconv.Itoa(min),
				}))
			case hasMax && max == min+1:
				consumed["MaxLevel"] = true
				clauses = append(clauses, render.Expand(st.EqualsOr, map[string]string{
					"quality": q,
					"min":     strconv.Itoa(min),
					"max":     strconv.Itoa(max),
				}))
			default:
				clauses = append(clauses, render.Expand(st.AtLeast, map[string]string{
					"quality": q, "value": strconv.Itoa(min),
				}))
			}
		case "MinAdvanced":
			value, _ := r.opStr(code)
			expanded := d.adv.Expand(value)
			if maxValue, hasMax := r.opStr("MaxAdvanced"); hasMax && d.adv.Expand(maxValue) == expanded {
				consumed["MaxAdvanced"] = true
				clauses = append(clauses, render.Expand(st.Equals, map[string]string{
					"quality": q, "value": expanded,
				}))
			} else {
				clauses = append(clauses, render.Expand(st.AtLeast, map[string]string{
					"quality": q, "value": expanded,
				}))
			}
		case "MaxLevel":
			max, _ := r.opInt(code)
			clauses = append(clauses, render.Expand(st.AtMost, map[string]string{
				"quality": q, "value": strconv.Itoa(max),
			}))
		case "MaxAdvanced":
			value, _ := r.opStr(code)
			clauses = append(clauses, render.Expand(st.AtMost, map[string]string{
				"quality": q, "value": d.adv.Expand(value),
			}))
		}
	}
	clauses = append(clauses, r.fallbackClauses(d, requirementOps)...)

	return strings.Join(clauses, st.OpSep)
}

// opValue renders an operator value for display. JSON numbers decode as
// float64 even when integral, so trim the fraction when there is none.
func opValue(v any) string {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) {
			return strconv.Itoa(int(t))
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}
