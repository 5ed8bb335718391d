package save

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeelore/pkg/lore"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func testWorld(t *testing.T) *lore.World {
	t.Helper()
	data := &lore.Data{
		Qualities: []lore.Raw{
			{"Id": float64(101), "Name": "Mirrors"},
			{"Id": float64(103), "Name": "Hunger"},
			{"Id": float64(107), "Name": "Supremacy: Rats",
				"LevelDescriptionText": "5|The rats rule."},
		},
	}
	return lore.New(data, lore.Options{}, testLog)
}

func testSave() lore.Raw {
	return lore.Raw{
		"GameVersion": "v2.2.2.3130",
		"QualitiesPossessedList": []any{
			map[string]any{
				"AssociatedQualityId":    float64(101),
				"Level":                  float64(50),
				"EffectiveLevelModifier": float64(3),
			},
			map[string]any{
				"AssociatedQualityId": float64(103),
				"Level":               float64(7),
			},
			map[string]any{
				"AssociatedQualityId": float64(9999),
				"Level":               float64(1),
			},
		},
	}
}

func TestNew(t *testing.T) {
	state := New(testSave(), testWorld(t), testLog)

	require.Equal(t, 3, state.Qualities.Len())

	mirrors, ok := state.Qualities.Get(101)
	require.True(t, ok)
	assert.Equal(t, "Mirrors", mirrors.Name())
	assert.Equal(t, 50, mirrors.Level())
	assert.Equal(t, 3, mirrors.Modifier())
	assert.Equal(t, 53, mirrors.EffectiveLevel())

	hunger, ok := state.Qualities.Get(103)
	require.True(t, ok)
	assert.Equal(t, 7, hunger.EffectiveLevel(), "absent modifier reads as zero")
}

func TestNewUnknownQualityKeepsPlaceholder(t *testing.T) {
	state := New(testSave(), testWorld(t), testLog)

	unknown, ok := state.Qualities.Get(9999)
	require.True(t, ok, "entries for unknown qualities are kept")
	require.NotNil(t, unknown.Quality())
	assert.Equal(t, 9999, unknown.Quality().ID())
	assert.Equal(t, 1, unknown.Level())
}

func TestSetLevelWritesThrough(t *testing.T) {
	raw := testSave()
	state := New(raw, testWorld(t), testLog)

	mirrors, _ := state.Qualities.Get(101)
	mirrors.SetLevel(77)

	assert.Equal(t, 77, mirrors.Level())
	assert.Equal(t, 80, mirrors.EffectiveLevel())

	// The retained raw record must see the edit so the save marshals back
	// with the new level and every unmodeled field intact.
	entry := raw.List("QualitiesPossessedList")[0]
	assert.Equal(t, 77, entry.Int("Level"))
	assert.Equal(t, "v2.2.2.3130", state.Raw().Str("GameVersion"))
}

func TestSaveQualityBare(t *testing.T) {
	state := New(testSave(), testWorld(t), testLog)

	mirrors, _ := state.Qualities.Get(101)
	assert.Equal(t, "101\tMirrors = 50 (+3)", mirrors.Bare())

	hunger, _ := state.Qualities.Get(103)
	assert.Equal(t, "103\tHunger = 7", hunger.Bare(), "zero modifier is omitted")

	unknown, _ := state.Qualities.Get(9999)
	assert.Equal(t, "9999\t9999 = 1", unknown.Bare(), "nameless placeholder falls back to the ID")
}

func TestSaveQualityPrettyStatus(t *testing.T) {
	raw := lore.Raw{
		"QualitiesPossessedList": []any{
			map[string]any{
				"AssociatedQualityId": float64(107),
				"Level":               float64(5),
			},
		},
	}
	state := New(raw, testWorld(t), testLog)

	rats, _ := state.Qualities.Get(107)
	assert.Contains(t, rats.Pretty(), "The rats rule.")
}

func TestSaveQualityFind(t *testing.T) {
	state := New(testSave(), testWorld(t), testLog)

	assert.Equal(t, 1, state.Qualities.Find("mirr").Len())
	assert.Equal(t, 0, state.Qualities.Find("veils").Len())
}
