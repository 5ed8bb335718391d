package lore

import (
	"strings"
	"testing"
)

func operatorWorld() *World {
	data := &Data{
		Qualities: []Raw{
			quality(101, "Mirrors", Raw{"DifficultyScaler": float64(60)}),
			quality(103, "Hunger", nil),
			quality(104, "Luck: your own", Raw{
				"Category":         float64(2000),
				"DifficultyScaler": float64(1),
			}),
			quality(105, "Pages", nil),
		},
	}
	return New(data, Options{}, testLog)
}

func requirement(w *World, ops Raw) *Requirement {
	raw := Raw{"Id": float64(1)}
	for k, v := range ops {
		raw[k] = v
	}
	return &Requirement{QualityOperator: w.newOperator(raw, placeholderEvent(1, w))}
}

func effect(w *World, ops Raw) *Effect {
	raw := Raw{"Id": float64(1)}
	for k, v := range ops {
		raw[k] = v
	}
	return &Effect{QualityOperator: w.newOperator(raw, placeholderEvent(1, w))}
}

func assoc(qid int) map[string]any {
	return map[string]any{"Id": float64(qid)}
}

func TestRequirementRender(t *testing.T) {
	w := operatorWorld()

	tests := []struct {
		name string
		ops  Raw
		want string
	}{
		{
			name: "min only",
			ops:  Raw{"AssociatedQuality": assoc(101), "MinLevel": float64(3)},
			want: "Mirrors at least 3",
		},
		{
			name: "max only",
			ops:  Raw{"AssociatedQuality": assoc(101), "MaxLevel": float64(7)},
			want: "Mirrors at most 7",
		},
		{
			name: "equal min and max collapse",
			ops:  Raw{"AssociatedQuality": assoc(101), "MinLevel": float64(3), "MaxLevel": float64(3)},
			want: "Mirrors equals 3",
		},
		{
			name: "adjacent min and max collapse",
			ops:  Raw{"AssociatedQuality": assoc(101), "MinLevel": float64(3), "MaxLevel": float64(4)},
			want: "Mirrors equals 3 or 4",
		},
		{
			name: "distinct min and max stay separate",
			ops:  Raw{"AssociatedQuality": assoc(101), "MinLevel": float64(2), "MaxLevel": float64(5)},
			want: "Mirrors at least 2, Mirrors at most 5",
		},
		{
			name: "difficulty uses the scaler",
			ops:  Raw{"AssociatedQuality": assoc(101), "DifficultyLevel": float64(30)},
			want: "Mirrors challenge (30 for 50% chance)",
		},
		{
			name: "luck difficulty is linear",
			ops:  Raw{"AssociatedQuality": assoc(104), "DifficultyLevel": float64(10)},
			want: "Luck: your own challenge (10 for 40% chance)",
		},
		{
			name: "zero scaler falls back to the raw value",
			ops:  Raw{"AssociatedQuality": assoc(105), "DifficultyLevel": float64(75)},
			want: "Pages challenge (75 for 75% chance)",
		},
		{
			name: "unlisted code through the fallback template",
			ops:  Raw{"AssociatedQuality": assoc(101), "Priority": float64(5)},
			want: "Mirrors Priority: 5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requirement(w, tt.ops).Pretty(); got != tt.want {
				t.Errorf("Pretty() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequirementChallengeRoundsUp(t *testing.T) {
	w := operatorWorld()
	// 100 * 20 / 60 = 33.3, rendered chance rounds up.
	r := requirement(w, Raw{"AssociatedQuality": assoc(101), "DifficultyLevel": float64(20)})
	if got := r.Pretty(); !strings.Contains(got, "34%") {
		t.Errorf("Pretty() = %q, want a 34%% chance", got)
	}
}

func TestRequirementHiddenOpsNotRendered(t *testing.T) {
	w := operatorWorld()
	r := requirement(w, Raw{
		"AssociatedQuality":            assoc(101),
		"MinLevel":                     float64(1),
		"VisibleWhenRequirementFailed": true,
	})
	if got := r.Pretty(); got != "Mirrors at least 1" {
		t.Errorf("Pretty() = %q, hidden codes must not render", got)
	}
}

func TestRequirementUnresolvedQuality(t *testing.T) {
	w := operatorWorld()
	r := requirement(w, Raw{"AssociatedQuality": assoc(999), "MinLevel": float64(1)})
	if r.Quality() == nil {
		t.Fatal("unresolved requirement must carry a placeholder quality")
	}
	if got := r.Pretty(); got != "(unknown quality 999) at least 1" {
		t.Errorf("Pretty() = %q", got)
	}
}

func TestEffectRender(t *testing.T) {
	w := operatorWorld()

	tests := []struct {
		name string
		ops  Raw
		want string
	}{
		{
			name: "gain",
			ops:  Raw{"AssociatedQuality": assoc(101), "Level": float64(2)},
			want: "Mirrors += 2",
		},
		{
			name: "reversed quality renders parenthesized",
			ops:  Raw{"AssociatedQuality": assoc(103), "Level": float64(2)},
			want: "Hunger (2)",
		},
		{
			name: "negative gain",
			ops:  Raw{"AssociatedQuality": assoc(101), "Level": float64(-2)},
			want: "Mirrors += -2",
		},
		{
			name: "set to exactly",
			ops:  Raw{"AssociatedQuality": assoc(101), "SetToExactly": float64(10)},
			want: "Mirrors = 10",
		},
		{
			name: "threshold gates trail the change",
			ops: Raw{
				"AssociatedQuality": assoc(101),
				"Level":             float64(1),
				"OnlyIfAtLeast":     float64(2),
				"OnlyIfNoMoreThan":  float64(9),
			},
			want: "Mirrors += 1, but only if Mirrors at least 2 and Mirrors at most 9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effect(w, tt.ops).Pretty(); got != tt.want {
				t.Errorf("Pretty() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectAdvancedValue(t *testing.T) {
	w := operatorWorld()
	e := effect(w, Raw{
		"AssociatedQuality": assoc(101),
		"ChangeByAdvanced":  "[d:[q:105]]",
	})
	if got := e.Pretty(); got != "Mirrors += [1 to Pages]" {
		t.Errorf("Pretty() = %q", got)
	}
}

func TestOperatorWikiDialect(t *testing.T) {
	w := operatorWorld()
	r := requirement(w, Raw{"AssociatedQuality": assoc(101), "MinLevel": float64(3)})
	if got := r.Wiki(); got != "{{link icon|Mirrors}} at least 3" {
		t.Errorf("Wiki() = %q", got)
	}
}

func TestOperatorBare(t *testing.T) {
	w := operatorWorld()
	r := requirement(w, Raw{
		"AssociatedQuality": assoc(101),
		"MinLevel":          float64(3),
		"MaxLevel":          float64(4),
	})
	got := r.Bare()
	if !strings.Contains(got, "MaxLevel: 4") || !strings.Contains(got, "MinLevel: 3") {
		t.Errorf("Bare() = %q, want raw code listing", got)
	}
	if strings.Index(got, "MaxLevel") > strings.Index(got, "MinLevel") {
		t.Errorf("Bare() = %q, codes must list in sorted order", got)
	}
}

func TestOpValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{float64(3), "3"},
		{float64(-2), "-2"},
		{float64(2.5), "2.5"},
		{"[q:1]", "[q:1]"},
		{true, "true"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := opValue(tt.in); got != tt.want {
			t.Errorf("opValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
