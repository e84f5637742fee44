package layout

import (
	"testing"

	"modeler-api/internal/modeler/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countByType(rooms []models.Room) map[string]int {
	out := map[string]int{}
	for _, r := range rooms {
		out[r.RoomType]++
	}
	return out
}

func TestSynthesizeRoomList(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1}

	rooms, walls, diags := Synthesize(facts)

	require.Len(t, rooms, 5)
	counts := countByType(rooms)
	assert.Equal(t, 2, counts[models.RoomBedroom])
	assert.Equal(t, 1, counts[models.RoomBathroom])
	// Кухня и гостиная добавляются по умолчанию.
	assert.Equal(t, 1, counts[models.RoomKitchen])
	assert.Equal(t, 1, counts[models.RoomLiving])

	assert.NotEmpty(t, walls)
	assert.Empty(t, diags)
}

func TestSynthesizeRoomNaming(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1}
	rooms, _, _ := Synthesize(facts)

	names := map[string]string{}
	for _, r := range rooms {
		names[r.RoomID] = r.Name
	}
	assert.Equal(t, "Bedroom 1", names["bedroom_1"])
	assert.Equal(t, "Bedroom 2", names["bedroom_2"])
	assert.Equal(t, "Bathroom", names["bathroom_1"])
	assert.Equal(t, "Living room", names["living_room_1"])
}

func TestSynthesizeAreaMatchesTotal(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1, TotalAreaM2: 60}
	rooms, _, _ := Synthesize(facts)

	sum := 0.0
	for _, r := range rooms {
		sum += r.AreaM2
		assert.InDelta(t, r.AreaM2, r.Bounds.Width*r.Bounds.Depth, 1e-9, r.RoomID)
	}
	assert.InDelta(t, 60, sum, 1e-9)
}

func TestSynthesizeScaleDownDiagnostic(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1, TotalAreaM2: 20}
	rooms, _, diags := Synthesize(facts)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0], "scaled all rooms")
	for _, r := range rooms {
		assert.Greater(t, r.AreaM2, 0.0, r.RoomID)
		assert.Greater(t, r.Bounds.Width, 0.0, r.RoomID)
		assert.Greater(t, r.Bounds.Depth, 0.0, r.RoomID)
	}
}

func TestSynthesizeWallOwnership(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 2}
	_, walls, _ := Synthesize(facts)

	for _, w := range walls {
		switch w.Kind {
		case models.WallInterior:
			assert.Len(t, w.Rooms, 2, w.WallID)
		case models.WallExterior:
			assert.Len(t, w.Rooms, 1, w.WallID)
			assert.True(t, w.LoadBearing, w.WallID)
		default:
			t.Fatalf("wall %s has unknown kind %q", w.WallID, w.Kind)
		}
	}
}

func TestSynthesizeEveryRoomTouchesExterior(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 3, Bathrooms: 2, Hallways: 1, StorageRooms: 1}
	rooms, walls, _ := Synthesize(facts)

	for _, r := range rooms {
		found := false
		for _, w := range RoomWalls(r.RoomID, walls) {
			if w.Kind == models.WallExterior {
				found = true
				break
			}
		}
		assert.True(t, found, "room %s has no exterior wall", r.RoomID)
	}
}

func TestSynthesizeBandCount(t *testing.T) {
	// Три комнаты — одна полоса: все Y нулевые.
	facts := models.ExtractedFacts{Bedrooms: 1}
	rooms, _, _ := Synthesize(facts)
	require.Len(t, rooms, 3)
	for _, r := range rooms {
		assert.Equal(t, 0.0, r.Bounds.Y, r.RoomID)
	}

	// Больше трех — две полосы.
	facts = models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1}
	rooms, _, _ = Synthesize(facts)
	ys := map[float64]bool{}
	for _, r := range rooms {
		ys[r.Bounds.Y] = true
	}
	assert.Len(t, ys, 2)
}

func TestSynthesizeAdjacencyIsSymmetric(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1}
	rooms, _, _ := Synthesize(facts)

	adj := map[string][]string{}
	for _, r := range rooms {
		adj[r.RoomID] = r.AdjacentRooms
	}
	for id, neighbors := range adj {
		for _, n := range neighbors {
			assert.Contains(t, adj[n], id, "adjacency %s -> %s not symmetric", id, n)
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 2, Bathrooms: 1, TotalAreaM2: 75}

	rooms1, walls1, diags1 := Synthesize(facts)
	rooms2, walls2, diags2 := Synthesize(facts)

	assert.Equal(t, rooms1, rooms2)
	assert.Equal(t, walls1, walls2)
	assert.Equal(t, diags1, diags2)
}
