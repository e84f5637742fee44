package layout

import (
	"fmt"
	"math"
	"sort"

	"modeler-api/internal/modeler/models"
)

// ============================================================
// Wall graph
// ============================================================

const eps = 1e-6

// buildWalls собирает стены по полосам комнат: вертикальные границы
// внутри полос, горизонтальные между полосами и внешний контур.
// Сегменты режутся по краям комнат, поэтому внутренняя стена всегда
// принадлежит ровно двум комнатам, наружная — одной.
func buildWalls(rooms []models.Room, width, depth float64) []models.Wall {
	bands := groupBands(rooms)

	var walls []models.Wall
	extN, intN := 0, 0

	addWall := func(p1, p2 models.Point, owners []string) {
		w := models.Wall{
			Start:   p1,
			End:     p2,
			HeightM: ceilingHeight,
			LevelID: levelID,
			Rooms:   owners,
		}
		if len(owners) == 2 {
			intN++
			w.WallID = fmt.Sprintf("wall_int_%d", intN)
			w.Kind = models.WallInterior
			w.ThicknessM = interiorThickness
		} else {
			extN++
			w.WallID = fmt.Sprintf("wall_ext_%d", extN)
			w.Kind = models.WallExterior
			w.ThicknessM = exteriorThickness
			w.LoadBearing = true
		}
		walls = append(walls, w)
	}

	// Вертикальные стены: края полос и границы соседних комнат.
	for _, band := range bands {
		yTop, yBot := band.y, band.y+band.h
		first := band.rooms[0]
		last := band.rooms[len(band.rooms)-1]

		addWall(models.Point{X: 0, Y: yTop}, models.Point{X: 0, Y: yBot}, []string{first.RoomID})
		for i := 0; i+1 < len(band.rooms); i++ {
			left, right := band.rooms[i], band.rooms[i+1]
			x := left.Bounds.X + left.Bounds.Width
			addWall(models.Point{X: x, Y: yTop}, models.Point{X: x, Y: yBot},
				[]string{left.RoomID, right.RoomID})
		}
		addWall(models.Point{X: width, Y: yTop}, models.Point{X: width, Y: yBot}, []string{last.RoomID})
	}

	// Горизонтальные границы: верх корпуса, стыки полос, низ корпуса.
	boundaries := []float64{0}
	for _, band := range bands {
		boundaries = append(boundaries, band.y+band.h)
	}

	for bi, yb := range boundaries {
		var above, below []models.Room
		if bi > 0 {
			above = bands[bi-1].rooms
		}
		if bi < len(bands) {
			below = bands[bi].rooms
		}

		points := []float64{0, width}
		for _, r := range above {
			points = append(points, r.Bounds.X, r.Bounds.X+r.Bounds.Width)
		}
		for _, r := range below {
			points = append(points, r.Bounds.X, r.Bounds.X+r.Bounds.Width)
		}
		sort.Float64s(points)
		points = uniquePoints(points)

		for i := 0; i+1 < len(points); i++ {
			x1, x2 := points[i], points[i+1]
			mid := (x1 + x2) / 2

			var owners []string
			if r := roomCovering(above, mid); r != nil {
				owners = append(owners, r.RoomID)
			}
			if r := roomCovering(below, mid); r != nil {
				owners = append(owners, r.RoomID)
			}
			if len(owners) == 0 {
				continue
			}
			addWall(models.Point{X: x1, Y: yb}, models.Point{X: x2, Y: yb}, owners)
		}
	}

	return walls
}

type band struct {
	y, h  float64
	rooms []models.Room
}

func groupBands(rooms []models.Room) []band {
	byY := map[float64][]models.Room{}
	for _, r := range rooms {
		byY[r.Bounds.Y] = append(byY[r.Bounds.Y], r)
	}

	ys := make([]float64, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Float64s(ys)

	bands := make([]band, 0, len(ys))
	for _, y := range ys {
		rs := byY[y]
		sort.Slice(rs, func(a, b int) bool { return rs[a].Bounds.X < rs[b].Bounds.X })
		bands = append(bands, band{y: y, h: rs[0].Bounds.Depth, rooms: rs})
	}

	return bands
}

func roomCovering(rooms []models.Room, x float64) *models.Room {
	for i := range rooms {
		b := rooms[i].Bounds
		if x > b.X-eps && x < b.X+b.Width+eps {
			return &rooms[i]
		}
	}
	return nil
}

// fillAdjacency восстанавливает списки смежности из внутренних стен.
func fillAdjacency(rooms []models.Room, walls []models.Wall) {
	index := map[string]int{}
	for i, r := range rooms {
		index[r.RoomID] = i
		rooms[i].AdjacentRooms = []string{}
	}

	for _, w := range walls {
		if len(w.Rooms) != 2 {
			continue
		}
		a, b := index[w.Rooms[0]], index[w.Rooms[1]]
		rooms[a].AdjacentRooms = appendUnique(rooms[a].AdjacentRooms, w.Rooms[1])
		rooms[b].AdjacentRooms = appendUnique(rooms[b].AdjacentRooms, w.Rooms[0])
	}
}

// ============================================================
// Geometry helpers
// ============================================================

// WallLength возвращает длину стены.
func WallLength(w models.Wall) float64 {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// RoomWalls отбирает стены, принадлежащие комнате.
func RoomWalls(roomID string, walls []models.Wall) []models.Wall {
	var out []models.Wall
	for _, w := range walls {
		for _, owner := range w.Rooms {
			if owner == roomID {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// WallSide определяет, к какой стороне прямоугольной комнаты
// прилегает стена: top, bottom, left, right. Пустая строка, если
// стена не лежит на границе комнаты.
func WallSide(room models.Room, w models.Wall) string {
	b := room.Bounds
	horizontal := math.Abs(w.Start.Y-w.End.Y) < eps

	if horizontal {
		if math.Abs(w.Start.Y-b.Y) < eps {
			return "top"
		}
		if math.Abs(w.Start.Y-(b.Y+b.Depth)) < eps {
			return "bottom"
		}
		return ""
	}

	if math.Abs(w.Start.X-b.X) < eps {
		return "left"
	}
	if math.Abs(w.Start.X-(b.X+b.Width)) < eps {
		return "right"
	}
	return ""
}

func uniquePoints(points []float64) []float64 {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for i := 1; i < len(points); i++ {
		if !almostEqual(points[i], points[i-1]) {
			out = append(out, points[i])
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func appendUnique(dst []string, s string) []string {
	for _, item := range dst {
		if item == s {
			return dst
		}
	}
	return append(dst, s)
}
