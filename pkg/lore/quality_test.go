package lore

import "testing"

func TestParseStatus(t *testing.T) {
	statuses := parseStatus("1|A faint glimmer.~5|Blinding.~-2|Worse than nothing.", testLog)
	want := map[int]string{
		1:  "A faint glimmer.",
		5:  "Blinding.",
		-2: "Worse than nothing.",
	}
	if len(statuses) != len(want) {
		t.Fatalf("parsed %d rows, want %d", len(statuses), len(want))
	}
	for level, text := range want {
		if statuses[level] != text {
			t.Errorf("level %d = %q, want %q", level, statuses[level], text)
		}
	}
}

func TestParseStatusMalformed(t *testing.T) {
	// Malformed rows are dropped, valid ones survive.
	statuses := parseStatus("no-separator~x|bad level~3|kept", testLog)
	if len(statuses) != 1 || statuses[3] != "kept" {
		t.Errorf("parseStatus = %v, want only the valid row", statuses)
	}
	if parseStatus("", testLog) != nil {
		t.Error("empty text should parse to nil")
	}
}

func TestQualityReversed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Hunger", true},
		{"Terror", true},
		{"Menaces: Wrath of the Deep", true},
		{"hunger pangs", true},
		{"Mirrors", false},
		{"Hungerford", false},
	}
	for _, tt := range tests {
		q := newQuality(quality(1, tt.name, nil), 1, testLog, false)
		if got := q.Reversed(); got != tt.want {
			t.Errorf("Reversed(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestQualityIsLuck(t *testing.T) {
	luck := newQuality(quality(1, "Luck: your own", Raw{"Category": float64(2000)}), 1, testLog, false)
	if !luck.IsLuck() {
		t.Error("category 2000 should be luck")
	}
	stat := newQuality(quality(2, "Mirrors", Raw{"Category": float64(1000)}), 2, testLog, false)
	if stat.IsLuck() {
		t.Error("category 1000 should not be luck")
	}
}

func TestQualityLevelDescription(t *testing.T) {
	q := newQuality(quality(1, "Supremacy", Raw{
		"LevelDescriptionText":  "1|Contested.~5|Absolute.",
		"ChangeDescriptionText": "1|Gaining ground.",
	}), 1, testLog, false)

	if text, ok := q.LevelDescription(5); !ok || text != "Absolute." {
		t.Errorf("LevelDescription(5) = %q, %v", text, ok)
	}
	if _, ok := q.LevelDescription(3); ok {
		t.Error("LevelDescription(3) should miss, descriptions are sparse")
	}
	if text, ok := q.ChangeDescription(1); !ok || text != "Gaining ground." {
		t.Errorf("ChangeDescription(1) = %q, %v", text, ok)
	}
}

func TestQualityImageFallback(t *testing.T) {
	q := newQuality(Raw{"Id": float64(1), "ImageName": "fallback"}, 1, testLog, false)
	if q.Image() != "fallback" {
		t.Errorf("Image = %q, want ImageName fallback", q.Image())
	}
	q = newQuality(Raw{"Id": float64(1), "Image": "primary", "ImageName": "fallback"}, 1, testLog, false)
	if q.Image() != "primary" {
		t.Errorf("Image = %q, want Image to win", q.Image())
	}
}
