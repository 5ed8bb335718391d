package lore

import (
	"io"
	"log/slog"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// quality builds the minimal quality record the tests reference by ID.
func quality(id int, name string, extra Raw) Raw {
	r := Raw{"Id": float64(id), "Name": name}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

// testWorld builds a small but fully linked graph: stats, a menace, a luck
// stat, two ports on one tile, an event with a challenge branch, and a shop
// trading one quality against another.
func testWorld() *World {
	data := &Data{
		Qualities: []Raw{
			quality(101, "Mirrors", Raw{"DifficultyScaler": float64(60)}),
			quality(102, "Hearts", Raw{"DifficultyScaler": float64(60)}),
			quality(103, "Hunger", nil),
			quality(104, "Luck: your own", Raw{
				"Category":         float64(2000),
				"DifficultyScaler": float64(1),
			}),
			quality(105, "Fuel", nil),
			quality(106, "Echo", nil),
			quality(107, "Supremacy: Rats", Raw{
				"LevelDescriptionText": "1|The rats hold on.~5|The rats rule.",
			}),
		},
		Areas: []Raw{
			{"Id": float64(201), "Name": "Pigmote Isle", "MoveMessage": "You approach the isle."},
			{"Id": float64(202), "Name": "Fallen London"},
			{"Id": float64(203), "Name": "Hunter's Quay"},
		},
		Events: []Raw{
			{
				"Id":            float64(301),
				"Name":          "Rodent Diplomacy",
				"LimitedToArea": map[string]any{"Id": float64(201)},
				"QualitiesRequired": []any{
					map[string]any{
						"Id":                float64(3011),
						"AssociatedQuality": map[string]any{"Id": float64(107)},
						"MinLevel":          float64(1),
					},
				},
				"ChildBranches": []any{
					map[string]any{
						"Id":   float64(310),
						"Name": "Take their side",
						"QualitiesRequired": []any{
							map[string]any{
								"Id":                float64(3101),
								"AssociatedQuality": map[string]any{"Id": float64(101)},
								"DifficultyLevel":   float64(30),
							},
						},
						"SuccessEvent": map[string]any{
							"Id":          float64(320),
							"LinkToEvent": map[string]any{"Id": float64(302)},
						},
						"SuccessEventChance": float64(60),
						"DefaultEvent": map[string]any{
							"Id": float64(311),
							"QualitiesAffected": []any{
								map[string]any{
									"Id":                float64(3111),
									"AssociatedQuality": map[string]any{"Id": float64(103)},
									"Level":             float64(2),
								},
							},
						},
					},
				},
			},
			{
				"Id":   float64(302),
				"Name": "A Grateful Court",
				"QualitiesAffected": []any{
					map[string]any{
						"Id":                float64(3021),
						"AssociatedQuality": map[string]any{"Id": float64(107)},
						"Level":             float64(1),
					},
				},
			},
		},
		Exchanges: []Raw{
			{
				"Id":         float64(401),
				"Name":       "The Isle Market",
				"SettingIds": []any{float64(501)},
				"Shops": []any{
					map[string]any{
						"Id":   float64(410),
						"Name": "Quartermistress",
						"Availabilities": []any{
							map[string]any{
								"Id":              float64(411),
								"Quality":         map[string]any{"Id": float64(105)},
								"PurchaseQuality": map[string]any{"Id": float64(106)},
								"Cost":            float64(20),
								"SellPrice":       float64(10),
							},
						},
					},
				},
			},
		},
		Tiles: []Raw{
			{
				"Name": "tile_south",
				"PortData": []any{
					map[string]any{
						"Area":    map[string]any{"Id": float64(201)},
						"Setting": map[string]any{"Id": float64(501)},
					},
					map[string]any{
						"Area":    map[string]any{"Id": float64(203)},
						"Setting": map[string]any{"Id": float64(501)},
					},
				},
			},
		},
	}
	return New(data, Options{}, testLog)
}
