package lore

import (
	"encoding/json"
	"log/slog"
	"sort"
)

// Raw is one decoded JSON record from a game data dump. Accessors never
// panic: a missing or mistyped field yields the zero value, since the dumps
// are full of optional fields and the graph must always build.
type Raw map[string]any

func (r Raw) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Raw) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}

func (r Raw) Str(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r Raw) Map(key string) Raw {
	if m, ok := r[key].(map[string]any); ok {
		return Raw(m)
	}
	if m, ok := r[key].(Raw); ok {
		return m
	}
	return nil
}

func (r Raw) List(key string) []Raw {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Raw(m))
		}
	}
	return out
}

// Ints returns a field holding a list of numbers, such as SettingIds.
func (r Raw) Ints(key string) []int {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, int(v))
		case int:
			out = append(out, v)
		}
	}
	return out
}

// Keys returns the record's field names in sorted order, for deterministic
// iteration over data whose native order the decoder does not preserve.
func (r Raw) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fieldSpec is the declarative field contract for one entity kind. One
// shared routine consults it instead of each type merging field sets.
type fieldSpec struct {
	required []string
	optional []string
	// invalid fields belong to a sibling kind and signal a record routed to
	// the wrong place
	invalid []string
	// open kinds carry an open vocabulary of extra fields (operator codes),
	// exempt from the unknown-field check
	open bool
}

var fieldSpecs = map[string]fieldSpec{
	"quality": {
		required: []string{"Id"},
		optional: []string{
			"Name", "Description", "Image", "ImageName",
			"Category", "Nature", "Cap", "DifficultyScaler", "Tag",
			"LevelDescriptionText", "ChangeDescriptionText", "LevelImageText",
			"Persistent", "Visible", "PluralName", "OwnerName", "Notes",
		},
	},
	"location": {
		required: []string{"Id"},
		optional: []string{
			"Name", "Description", "Image", "ImageName",
			"MoveMessage", "HideName", "RandomDefault",
		},
	},
	"event": {
		required: []string{"Id"},
		optional: []string{
			"Name", "Description", "Image", "ImageName", "Category",
			"LimitedToArea", "ChildBranches",
			"QualitiesRequired", "QualitiesAffected",
			"Autofire", "Urgency",
		},
		invalid: []string{"ParentEvent", "LinkToEvent"},
	},
	"action": {
		required: []string{"Id"},
		optional: []string{
			"Name", "Description", "Image", "ImageName", "ParentEvent",
			"QualitiesRequired", "ActionCost",
			"DefaultEvent", "DefaultEventChance",
			"RareDefaultEvent", "RareDefaultEventChance",
			"SuccessEvent", "SuccessEventChance",
			"RareSuccessEvent", "RareSuccessEventChance",
		},
		invalid: []string{"LimitedToArea", "ChildBranches", "LinkToEvent", "QualitiesAffected"},
	},
	"outcome": {
		required: []string{"Id"},
		optional: []string{
			"Name", "Description", "Image", "ImageName", "ParentEvent",
			"QualitiesAffected", "LinkToEvent", "ExoticEffects",
		},
		invalid: []string{"LimitedToArea", "ChildBranches", "QualitiesRequired"},
	},
	"operator": {
		required: []string{"Id", "AssociatedQuality"},
		open:     true,
	},
	"exchange": {
		required: []string{"Id"},
		optional: []string{"Name", "Title", "Description", "Image", "SettingIds", "Shops"},
	},
	"shop": {
		required: []string{"Id"},
		optional: []string{"Name", "Description", "Image", "ImageName", "Availabilities"},
	},
	"tile": {
		required: []string{"Name"},
		optional: []string{"Tiles", "PortData"},
	},
	"shopitem": {
		required: []string{"Id", "Quality"},
		optional: []string{"PurchaseQuality", "Cost", "SellPrice"},
	},
}

// validateFields checks a record against its kind's field contract. Log-only:
// schema drift never blocks construction.
func validateFields(kind string, r Raw, log *slog.Logger) {
	spec, ok := fieldSpecs[kind]
	if !ok {
		return
	}
	known := make(map[string]bool, len(spec.required)+len(spec.optional))
	for _, f := range spec.required {
		known[f] = true
		if !r.Has(f) {
			log.Warn("missing required field", "kind", kind, "field", f, "id", r.Int("Id"))
		}
	}
	for _, f := range spec.optional {
		known[f] = true
	}
	for _, f := range spec.invalid {
		known[f] = true
		if v, present := r[f]; present && !isEmptyValue(v) {
			log.Warn("invalid field for kind", "kind", kind, "field", f, "id", r.Int("Id"))
		}
	}
	if spec.open {
		return
	}
	for _, f := range r.Keys() {
		if !known[f] {
			log.Warn("unknown field", "kind", kind, "field", f, "id", r.Int("Id"))
		}
	}
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64:
		return t == 0
	}
	return false
}
