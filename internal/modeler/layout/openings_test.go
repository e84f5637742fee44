package layout

import (
	"sort"
	"testing"

	"modeler-api/internal/modeler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesized(t *testing.T, facts models.ExtractedFacts) ([]models.Room, []models.Wall, []models.Opening) {
	t.Helper()
	rooms, walls, _ := Synthesize(facts)
	openings, _ := PlaceOpenings(rooms, walls)
	return rooms, walls, openings
}

func TestPlaceOpeningsRatiosInRange(t *testing.T) {
	_, _, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1})

	require.NotEmpty(t, openings)
	for _, o := range openings {
		assert.Greater(t, o.PositionRatio, 0.0, o.OpeningID)
		assert.Less(t, o.PositionRatio, 1.0, o.OpeningID)
	}
}

func TestPlaceOpeningsSingleEntry(t *testing.T) {
	_, walls, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1})

	wallByID := map[string]models.Wall{}
	for _, w := range walls {
		wallByID[w.WallID] = w
	}

	entries := 0
	for _, o := range openings {
		if !o.Entry {
			continue
		}
		entries++
		assert.Equal(t, models.OpeningDoor, o.Type)
		assert.Equal(t, models.WallExterior, wallByID[o.WallID].Kind)
	}
	assert.Equal(t, 1, entries)
}

func TestPlaceOpeningsDoorPerInteriorWall(t *testing.T) {
	_, walls, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1, TotalAreaM2: 90})

	interior := 0
	for _, w := range walls {
		if w.Kind == models.WallInterior {
			interior++
		}
	}

	doors := 0
	for _, o := range openings {
		if o.Type == models.OpeningDoor && !o.Entry {
			doors++
		}
	}
	assert.Equal(t, interior, doors)
}

func TestPlaceOpeningsWindowRules(t *testing.T) {
	rooms, walls, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1, TotalAreaM2: 90})

	roomByID := map[string]models.Room{}
	for _, r := range rooms {
		roomByID[r.RoomID] = r
	}
	wallByID := map[string]models.Wall{}
	for _, w := range walls {
		wallByID[w.WallID] = w
	}

	windows := 0
	for _, o := range openings {
		if o.Type != models.OpeningWindow {
			continue
		}
		windows++
		assert.True(t, o.Transparent, o.OpeningID)

		w := wallByID[o.WallID]
		require.Equal(t, models.WallExterior, w.Kind, o.OpeningID)
		require.Len(t, w.Rooms, 1)
		owner := roomByID[w.Rooms[0]]
		assert.Contains(t, []string{models.RoomBedroom, models.RoomLiving}, owner.RoomType,
			"window %s on %s wall", o.OpeningID, owner.RoomType)
	}
	assert.Greater(t, windows, 0)
}

func TestPlaceOpeningsKitchenVentilation(t *testing.T) {
	rooms, _, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1, Kitchens: 1, TotalAreaM2: 70})

	kitchenWalls := map[string]bool{}
	for _, r := range rooms {
		if r.RoomType == models.RoomKitchen {
			kitchenWalls[r.RoomID] = true
		}
	}
	require.NotEmpty(t, kitchenWalls)

	vents := 0
	for _, o := range openings {
		if o.Type == models.OpeningVentilation {
			vents++
		}
	}
	assert.Equal(t, 1, vents)
}

func TestPlaceOpeningsNoOverlapPerWall(t *testing.T) {
	_, walls, openings := synthesized(t, models.ExtractedFacts{Bedrooms: 3, Bathrooms: 2, Hallways: 1, TotalAreaM2: 120})

	wallByID := map[string]models.Wall{}
	for _, w := range walls {
		wallByID[w.WallID] = w
	}

	byWall := map[string][][2]float64{}
	for _, o := range openings {
		w := wallByID[o.WallID]
		center := WallLength(w) * o.PositionRatio
		byWall[o.WallID] = append(byWall[o.WallID], [2]float64{center - o.WidthM/2, center + o.WidthM/2})
	}

	for wallID, spans := range byWall {
		sort.Slice(spans, func(a, b int) bool { return spans[a][0] < spans[b][0] })
		for i := 1; i < len(spans); i++ {
			assert.LessOrEqual(t, spans[i-1][1], spans[i][0]+1e-9,
				"openings overlap on %s", wallID)
		}
	}
}
