package layout

import (
	"fmt"
	"math"
	"sort"

	"modeler-api/internal/modeler/models"
)

// ============================================================
// Opening Placer
// ============================================================

const (
	doorWidth  = 0.9
	doorHeight = 2.1

	windowWidth  = 1.2
	windowHeight = 1.5
	minSillWall  = 1.5 // короче — окно не ставим

	ventWidth  = 0.8
	ventHeight = 0.4

	openingMargin = 0.1  // отступ проема от края стены
	openingGap    = 0.05 // зазор между проемами на одной стене
)

// PlaceOpenings расставляет двери, окна и вентиляцию по правилам
// типов комнат. Конфликты на стене решаются сдвигом, затем
// отбрасыванием с диагностикой — не ошибкой.
func PlaceOpenings(rooms []models.Room, walls []models.Wall) ([]models.Opening, []string) {
	p := &openingPlacer{
		occupied: map[string][]interval{},
		roomByID: map[string]models.Room{},
	}
	for _, r := range rooms {
		p.roomByID[r.RoomID] = r
	}

	// Дверь на каждой внутренней стене между двумя комнатами.
	doorN := 0
	for _, w := range walls {
		if w.Kind != models.WallInterior {
			continue
		}
		doorN++
		ok := p.place(w, models.Opening{
			OpeningID: fmt.Sprintf("door_%d", doorN),
			Type:      models.OpeningDoor,
			WidthM:    doorWidth,
			HeightM:   doorHeight,
			Swing:     "left",
		}, WallLength(w)/2)
		if !ok {
			p.diags = append(p.diags, fmt.Sprintf(
				"door dropped on %s: no clearance (%.2f m wall)", w.WallID, WallLength(w)))
		}
	}

	p.placeEntry(rooms, walls)
	p.placeWindows(rooms, walls)
	p.placeVents(rooms, walls)

	return p.openings, p.diags
}

type interval struct {
	start, end float64
}

type openingPlacer struct {
	openings []models.Opening
	diags    []string
	occupied map[string][]interval
	roomByID map[string]models.Room
}

// place ставит проем на стену как можно ближе к желаемой позиции
// (в метрах от начала стены). false — проем не влез и отброшен.
func (p *openingPlacer) place(w models.Wall, o models.Opening, desired float64) bool {
	length := WallLength(w)
	half := o.WidthM / 2

	lo := openingMargin + half
	hi := length - openingMargin - half
	if lo > hi {
		return false
	}

	center, ok := p.fit(w.WallID, clamp(desired, lo, hi), half, lo, hi)
	if !ok {
		return false
	}

	o.WallID = w.WallID
	o.PositionRatio = center / length
	p.openings = append(p.openings, o)
	p.occupied[w.WallID] = append(p.occupied[w.WallID],
		interval{start: center - half, end: center + half})
	return true
}

// fit ищет центр без пересечений с занятыми интервалами: сначала
// желаемая позиция, затем ближайший зазор между проемами.
func (p *openingPlacer) fit(wallID string, desired, half, lo, hi float64) (float64, bool) {
	taken := append([]interval(nil), p.occupied[wallID]...)
	sort.Slice(taken, func(a, b int) bool { return taken[a].start < taken[b].start })

	free := func(center float64) bool {
		for _, iv := range taken {
			if center+half+openingGap > iv.start && center-half-openingGap < iv.end {
				return false
			}
		}
		return true
	}

	if free(desired) {
		return desired, true
	}

	best := math.MaxFloat64
	found := 0.0
	for _, iv := range taken {
		for _, cand := range []float64{iv.start - openingGap - half, iv.end + openingGap + half} {
			c := clamp(cand, lo, hi)
			if !free(c) {
				continue
			}
			if d := math.Abs(c - desired); d < best {
				best = d
				found = c
			}
		}
	}
	if best == math.MaxFloat64 {
		return 0, false
	}
	return found, true
}

// ============================================================
// Placement rules
// ============================================================

// placeEntry ставит ровно одну входную дверь на наружной стене,
// предпочитая гостиную или коридор.
func (p *openingPlacer) placeEntry(rooms []models.Room, walls []models.Wall) {
	var candidates []models.Room
	for _, t := range []string{models.RoomLiving, models.RoomHallway} {
		for _, r := range rooms {
			if r.RoomType == t {
				candidates = append(candidates, r)
			}
		}
	}
	for _, r := range rooms {
		if r.RoomType != models.RoomLiving && r.RoomType != models.RoomHallway {
			candidates = append(candidates, r)
		}
	}

	for _, r := range candidates {
		wall, ok := longestExteriorWall(r.RoomID, walls)
		if !ok {
			continue
		}
		placed := p.place(wall, models.Opening{
			OpeningID: "door_entry",
			Type:      models.OpeningDoor,
			WidthM:    doorWidth,
			HeightM:   doorHeight,
			Swing:     "left",
			Entry:     true,
		}, WallLength(wall)/2)
		if placed {
			return
		}
	}

	p.diags = append(p.diags, "entry door dropped: no feasible exterior wall")
}

// placeWindows дает окно каждой достаточно длинной наружной стене
// спальни или гостиной.
func (p *openingPlacer) placeWindows(rooms []models.Room, walls []models.Wall) {
	windowN := 0
	for _, w := range walls {
		if w.Kind != models.WallExterior || len(w.Rooms) != 1 {
			continue
		}
		room, ok := p.roomByID[w.Rooms[0]]
		if !ok {
			continue
		}
		if room.RoomType != models.RoomBedroom && room.RoomType != models.RoomLiving {
			continue
		}
		if WallLength(w) < minSillWall {
			continue
		}

		windowN++
		ok = p.place(w, models.Opening{
			OpeningID:   fmt.Sprintf("window_%d", windowN),
			Type:        models.OpeningWindow,
			WidthM:      windowWidth,
			HeightM:     windowHeight,
			Swing:       "none",
			Transparent: true,
		}, WallLength(w)/2)
		if !ok {
			p.diags = append(p.diags, fmt.Sprintf(
				"window dropped on %s for %s: no clearance", w.WallID, room.RoomID))
		}
	}
}

// placeVents дает каждой кухне вентиляционный проем: на наружной
// стене, иначе на любой стене с понижением уверенности.
func (p *openingPlacer) placeVents(rooms []models.Room, walls []models.Wall) {
	ventN := 0
	for _, r := range rooms {
		if r.RoomType != models.RoomKitchen {
			continue
		}
		ventN++
		vent := models.Opening{
			OpeningID: fmt.Sprintf("vent_%d", ventN),
			Type:      models.OpeningVentilation,
			WidthM:    ventWidth,
			HeightM:   ventHeight,
			Swing:     "none",
		}

		if wall, ok := longestExteriorWall(r.RoomID, walls); ok {
			if p.place(wall, vent, WallLength(wall)*0.3) {
				continue
			}
		}

		// Fallback: любая стена кухни, длинные сначала.
		owned := RoomWalls(r.RoomID, walls)
		sort.SliceStable(owned, func(a, b int) bool {
			return WallLength(owned[a]) > WallLength(owned[b])
		})
		placed := false
		for _, wall := range owned {
			if p.place(wall, vent, WallLength(wall)*0.3) {
				p.diags = append(p.diags, fmt.Sprintf(
					"kitchen %s ventilation on fallback wall %s", r.RoomID, wall.WallID))
				placed = true
				break
			}
		}
		if !placed {
			p.diags = append(p.diags, fmt.Sprintf("ventilation dropped for %s", r.RoomID))
		}
	}
}

func longestExteriorWall(roomID string, walls []models.Wall) (models.Wall, bool) {
	var best models.Wall
	bestLen := 0.0
	found := false
	for _, w := range RoomWalls(roomID, walls) {
		if w.Kind != models.WallExterior {
			continue
		}
		if l := WallLength(w); l > bestLen+eps {
			best = w
			bestLen = l
			found = true
		}
	}
	return best, found
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
