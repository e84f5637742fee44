package assembler

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"modeler-api/internal/modeler/layout"
	"modeler-api/internal/modeler/models"
)

// ============================================================
// Layout inconsistency
// ============================================================

// InconsistencyError — нарушение структурных инвариантов сцены,
// обнаруженное при финальной сборке. Никогда не чинится молча.
type InconsistencyError struct {
	Violations []string
}

func (e *InconsistencyError) Error() string {
	return "layout inconsistency: " + strings.Join(e.Violations, "; ")
}

const checkEps = 1e-6

// selfCheck проверяет замкнутость контуров комнат, принадлежность
// стен, попадание проемов в стены и мебели в комнаты.
func selfCheck(doc *models.SceneDocument) []string {
	var out []string
	out = append(out, checkRoomLoops(doc)...)
	out = append(out, checkWallOwnership(doc)...)
	out = append(out, checkOpenings(doc)...)
	out = append(out, checkFurniture(doc)...)
	return out
}

// checkRoomLoops: стены каждой комнаты должны без зазоров и
// наложений покрывать весь ее периметр.
func checkRoomLoops(doc *models.SceneDocument) []string {
	var out []string

	for _, room := range doc.Rooms {
		owned := layout.RoomWalls(room.RoomID, doc.Walls)
		b := room.Bounds

		sides := []struct {
			name     string
			from, to float64
		}{
			{"top", b.X, b.X + b.Width},
			{"bottom", b.X, b.X + b.Width},
			{"left", b.Y, b.Y + b.Depth},
			{"right", b.Y, b.Y + b.Depth},
		}

		for _, side := range sides {
			var spans [][2]float64
			for _, w := range owned {
				if layout.WallSide(room, w) != side.name {
					continue
				}
				var lo, hi float64
				if side.name == "top" || side.name == "bottom" {
					lo, hi = w.Start.X, w.End.X
				} else {
					lo, hi = w.Start.Y, w.End.Y
				}
				if lo > hi {
					lo, hi = hi, lo
				}
				spans = append(spans, [2]float64{lo, hi})
			}

			if !covers(spans, side.from, side.to) {
				out = append(out, fmt.Sprintf(
					"room %s: wall loop not closed on %s side", room.RoomID, side.name))
			}
		}
	}

	return out
}

// covers проверяет, что отрезки точно замощают [from,to].
func covers(spans [][2]float64, from, to float64) bool {
	if len(spans) == 0 {
		return false
	}
	sort.Slice(spans, func(a, b int) bool { return spans[a][0] < spans[b][0] })

	cursor := from
	for _, s := range spans {
		if math.Abs(s[0]-cursor) > checkEps {
			return false
		}
		cursor = s[1]
	}
	return math.Abs(cursor-to) <= checkEps
}

func checkWallOwnership(doc *models.SceneDocument) []string {
	var out []string
	for _, w := range doc.Walls {
		switch w.Kind {
		case models.WallInterior:
			if len(w.Rooms) != 2 {
				out = append(out, fmt.Sprintf(
					"wall %s: interior wall has %d owner rooms", w.WallID, len(w.Rooms)))
			}
		case models.WallExterior:
			if len(w.Rooms) != 1 {
				out = append(out, fmt.Sprintf(
					"wall %s: exterior wall has %d owner rooms", w.WallID, len(w.Rooms)))
			}
		default:
			out = append(out, fmt.Sprintf("wall %s: unknown kind %q", w.WallID, w.Kind))
		}
	}
	return out
}

func checkOpenings(doc *models.SceneDocument) []string {
	var out []string

	wallByID := map[string]models.Wall{}
	for _, w := range doc.Walls {
		wallByID[w.WallID] = w
	}

	spansPerWall := map[string][][2]float64{}
	entries := 0

	for _, o := range doc.Openings {
		w, ok := wallByID[o.WallID]
		if !ok {
			out = append(out, fmt.Sprintf("opening %s: unknown wall %s", o.OpeningID, o.WallID))
			continue
		}
		if o.PositionRatio <= 0 || o.PositionRatio >= 1 {
			out = append(out, fmt.Sprintf(
				"opening %s: position %.3f outside (0,1)", o.OpeningID, o.PositionRatio))
			continue
		}

		length := layout.WallLength(w)
		center := o.PositionRatio * length
		lo, hi := center-o.WidthM/2, center+o.WidthM/2
		if lo < -checkEps || hi > length+checkEps {
			out = append(out, fmt.Sprintf(
				"opening %s: extends past wall %s span", o.OpeningID, o.WallID))
		}
		spansPerWall[o.WallID] = append(spansPerWall[o.WallID], [2]float64{lo, hi})

		if o.Entry {
			entries++
			if w.Kind != models.WallExterior {
				out = append(out, fmt.Sprintf("opening %s: entry on interior wall", o.OpeningID))
			}
		}
	}

	for wallID, spans := range spansPerWall {
		sort.Slice(spans, func(a, b int) bool { return spans[a][0] < spans[b][0] })
		for i := 0; i+1 < len(spans); i++ {
			if spans[i][1] > spans[i+1][0]+checkEps {
				out = append(out, fmt.Sprintf("wall %s: overlapping openings", wallID))
				break
			}
		}
	}

	// Отсутствие входа — диагностированная деградация размещения,
	// не нарушение: фатален только дубликат.
	if entries > 1 {
		out = append(out, fmt.Sprintf("building has %d entry doors, want at most 1", entries))
	}

	return out
}

func checkFurniture(doc *models.SceneDocument) []string {
	var out []string

	roomByID := map[string]models.Room{}
	for _, r := range doc.Rooms {
		roomByID[r.RoomID] = r
	}

	perRoom := map[string][][4]float64{} // x1, y1, x2, y2 в координатах комнаты

	for _, f := range doc.Furniture {
		room, ok := roomByID[f.RoomID]
		if !ok {
			out = append(out, fmt.Sprintf("furniture %s: unknown room %s", f.FurnitureID, f.RoomID))
			continue
		}

		// Поворот на 90/270 меняет ориентацию габарита.
		w, d := f.WidthM, f.DepthM
		if rot := math.Mod(f.RotationDeg, 180); math.Abs(rot-90) < checkEps {
			w, d = d, w
		}

		x1, y1 := f.Position.X-w/2, f.Position.Y-d/2
		x2, y2 := f.Position.X+w/2, f.Position.Y+d/2

		if x1 < -checkEps || y1 < -checkEps ||
			x2 > room.Bounds.Width+checkEps || y2 > room.Bounds.Depth+checkEps {
			out = append(out, fmt.Sprintf(
				"furniture %s: footprint outside room %s", f.FurnitureID, f.RoomID))
		}

		for _, o := range perRoom[f.RoomID] {
			if x1 < o[2]-checkEps && o[0] < x2-checkEps &&
				y1 < o[3]-checkEps && o[1] < y2-checkEps {
				out = append(out, fmt.Sprintf(
					"furniture %s: overlaps another item in %s", f.FurnitureID, f.RoomID))
				break
			}
		}
		perRoom[f.RoomID] = append(perRoom[f.RoomID], [4]float64{x1, y1, x2, y2})
	}

	return out
}
