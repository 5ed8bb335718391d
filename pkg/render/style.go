package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is one output dialect: a set of template strings consumed by the
// advanced-string handlers and the operator formatter. The clause-selection
// logic never inspects a Style beyond expanding its templates, so adding a
// dialect means adding an instance, not changing logic.
//
// Templates use {field} placeholders expanded by Expand.
type Style struct {
	// Inline reference tokens
	Quality        string // resolved quality reference; {name} {id}
	QualityMissing string // numeric reference with no matching quality; {id}
	QualityNamed   string // literal (non-numeric) quality reference; {name}
	Dice           string // dice-roll expression wrapper; {text}

	// Operator clauses. Each clause embeds the subject quality reference
	// as {quality}.
	Gain         string // relative level change; {quality} {value}
	GainRev      string // relative change on a reversed-scale quality; {quality} {value}
	SetTo        string // absolute set; {quality} {value}
	AtLeast      string // minimum threshold; {quality} {value}
	AtMost       string // maximum threshold; {quality} {value}
	Equals       string // collapsed min==max; {quality} {value}
	EqualsOr     string // collapsed max==min+1; {quality} {min} {max}
	Challenge    string // difficulty check; {quality} {value} {chance}
	ChallengeAdv string // difficulty check with a computed value; {quality} {value}
	Operator     string // fallback for codes outside the fixed list; {quality} {code} {value}

	OpSep        string // joins primary clauses
	OnlyIfPrefix string // introduces the threshold-gate clause list
	OnlyIfSep    string // joins threshold-gate clauses
}

// Plain renders narrative text for terminal output.
var Plain = &Style{
	Quality:        "{name}",
	QualityMissing: "(unknown quality {id})",
	QualityNamed:   "{name}",
	Dice:           "[1 to {text}]",

	Gain:         "{quality} += {value}",
	GainRev:      "{quality} ({value})",
	SetTo:        "{quality} = {value}",
	AtLeast:      "{quality} at least {value}",
	AtMost:       "{quality} at most {value}",
	Equals:       "{quality} equals {value}",
	EqualsOr:     "{quality} equals {min} or {max}",
	Challenge:    "{quality} challenge ({value} for {chance}% chance)",
	ChallengeAdv: "{quality} challenge ({value})",
	Operator:     "{quality} {code}: {value}",

	OpSep:        ", ",
	OnlyIfPrefix: ", but only if ",
	OnlyIfSep:    " and ",
}

// Wiki renders https://sunlesssea.fandom.com markup.
var Wiki = &Style{
	Quality:        "{{link icon|{name}}}",
	QualityMissing: "(unknown quality {id})",
	QualityNamed:   "[[{name}]]",
	Dice:           "[1 to {text}]",

	Gain:         "{quality} += {value}",
	GainRev:      "{quality} ({value})",
	SetTo:        "{quality} = {value}",
	AtLeast:      "{quality} at least {value}",
	AtMost:       "{quality} at most {value}",
	Equals:       "{quality} equals {value}",
	EqualsOr:     "{quality} equals {min} or {max}",
	Challenge:    "{quality} challenge ({value} for {chance}% chance)",
	ChallengeAdv: "{quality} challenge ({value})",
	Operator:     "{quality} {code}: {value}",

	OpSep:        ", ",
	OnlyIfPrefix: ", but only if ",
	OnlyIfSep:    " and ",
}

// Expand substitutes {key} placeholders in a template. Unknown placeholders
// are left verbatim so a bad template is visible in the output rather than
// silently blanked.
func Expand(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var titleCaser = cases.Title(language.English)

// WikiTitle normalizes an entity name for use as a wiki page heading.
func WikiTitle(name string) string {
	return titleCaser.String(name)
}
