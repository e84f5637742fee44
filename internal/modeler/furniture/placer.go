package furniture

import (
	"fmt"
	"math"

	"modeler-api/internal/modeler/layout"
	"modeler-api/internal/modeler/models"
	"modeler-api/internal/modeler/style"
)

// ============================================================
// Furniture Placer
// ============================================================

const (
	walkClearance = 0.9  // минимальный проход до противоположного препятствия
	wallGap       = 0.05 // отступ предмета от стены
	cornerGap     = 0.15 // отступ от углов комнаты
	itemGap       = 0.3  // зазор между предметами вдоль стены
	swingFactor   = 1.5  // радиус дуги двери в ширинах двери
	eps           = 1e-6
)

type presetItem struct {
	itemType string
	width    float64 // вдоль стены
	depth    float64 // вглубь комнаты
}

// Пресеты по типам комнат, важные предметы первыми. При нехватке
// места хвост списка отбрасывается.
var presets = map[string][]presetItem{
	models.RoomBedroom: {
		{"bed", 1.6, 2.0},
		{"wardrobe", 1.0, 0.6},
		{"nightstand", 0.45, 0.45},
	},
	models.RoomBathroom: {
		{"toilet", 0.4, 0.65},
		{"sink", 0.5, 0.45},
		{"shower", 0.9, 0.9},
	},
	models.RoomKitchen: {
		{"kitchen_counter", 1.8, 0.6},
		{"refrigerator", 0.6, 0.7},
		{"stove", 0.6, 0.6},
	},
	models.RoomLiving: {
		{"sofa", 2.0, 0.9},
		{"coffee_table", 1.1, 0.6},
		{"tv_stand", 1.4, 0.4},
		{"armchair", 0.8, 0.8},
	},
	models.RoomHallway: {
		{"shoe_rack", 0.8, 0.35},
	},
	models.RoomStorage: {
		{"shelf", 0.9, 0.4},
	},
}

type rect struct {
	x, y, w, h float64
}

// Place расставляет мебель комнаты вдоль стен: самая длинная стена
// первой, с проходом walkClearance и обходом дуги дверей. Предметы,
// которые не влезли, отбрасываются с диагностикой.
func Place(room models.Room, desc style.Descriptor, walls []models.Wall, openings []models.Opening) ([]models.Furniture, []string) {
	preset := presets[room.RoomType]
	if len(preset) == 0 {
		return nil, nil
	}

	// Плотность стиля урезает хвост пресета (минимализм — меньше мебели).
	limit := int(math.Round(desc.FurnitureDensity * float64(len(preset))))
	if limit < 1 {
		limit = 1
	}
	if limit < len(preset) {
		preset = preset[:limit]
	}

	pl := &placer{
		room:       room,
		sides:      orderSides(room),
		doorBlocks: doorBlocks(room, walls, openings),
		oppDepth:   map[string]float64{},
	}

	var items []models.Furniture
	var diags []string

	for _, item := range preset {
		r, side, ok := pl.tryPlace(item)
		if !ok {
			diags = append(diags, fmt.Sprintf(
				"furniture %s dropped in %s: insufficient space", item.itemType, room.RoomID))
			continue
		}

		pl.placed = append(pl.placed, r)
		if d := item.depth; d > pl.oppDepth[side] {
			pl.oppDepth[side] = d
		}

		items = append(items, models.Furniture{
			FurnitureID: fmt.Sprintf("%s_%s", item.itemType, room.RoomID),
			Type:        item.itemType,
			RoomID:      room.RoomID,
			Position:    models.Point{X: r.x + r.w/2, Y: r.y + r.h/2},
			RotationDeg: sideRotation(side),
			Scale:       1.0,
			Preset:      fmt.Sprintf("%s_%s_01", item.itemType, desc.Theme),
			WidthM:      item.width,
			DepthM:      item.depth,
		})
	}

	return items, diags
}

// ============================================================
// Placement mechanics
// ============================================================

type placer struct {
	room       models.Room
	sides      []string
	doorBlocks map[string][]span
	placed     []rect
	oppDepth   map[string]float64
}

type span struct {
	start, end float64
}

// tryPlace ищет место вдоль сторон комнаты в порядке убывания длины.
func (p *placer) tryPlace(item presetItem) (rect, string, bool) {
	for _, side := range p.sides {
		length := p.sideLength(side)
		extent := p.sideExtent(side)

		// Проход: глубина предмета + клиренс + предметы напротив.
		if item.depth+walkClearance+p.oppDepth[opposite(side)] > extent {
			continue
		}

		lo := cornerGap + item.width/2
		hi := length - cornerGap - item.width/2
		if lo > hi {
			continue
		}

		c := lo
		for c <= hi+eps {
			if next, blocked := p.blockedAt(side, c, item.width); blocked {
				c = next + item.width/2 + itemGap
				continue
			}
			r := p.rectFor(side, c, item)
			if far, hit := p.collides(side, r); hit {
				c = far + item.width/2 + itemGap
				continue
			}
			return r, side, true
		}
	}
	return rect{}, "", false
}

// blockedAt проверяет дугу двери; возвращает конец блока для сдвига.
func (p *placer) blockedAt(side string, c, width float64) (float64, bool) {
	for _, b := range p.doorBlocks[side] {
		if c+width/2 > b.start && c-width/2 < b.end {
			return b.end, true
		}
	}
	return 0, false
}

// collides проверяет пересечение с уже расставленными предметами;
// возвращает дальний край пересекающего предмета вдоль стороны.
func (p *placer) collides(side string, r rect) (float64, bool) {
	for _, o := range p.placed {
		if r.x+r.w+itemGap <= o.x || o.x+o.w+itemGap <= r.x ||
			r.y+r.h+itemGap <= o.y || o.y+o.h+itemGap <= r.y {
			continue
		}
		if side == "top" || side == "bottom" {
			return o.x + o.w, true
		}
		return o.y + o.h, true
	}
	return 0, false
}

func (p *placer) rectFor(side string, c float64, item presetItem) rect {
	b := p.room.Bounds
	switch side {
	case "top":
		return rect{x: c - item.width/2, y: wallGap, w: item.width, h: item.depth}
	case "bottom":
		return rect{x: c - item.width/2, y: b.Depth - wallGap - item.depth, w: item.width, h: item.depth}
	case "left":
		return rect{x: wallGap, y: c - item.width/2, w: item.depth, h: item.width}
	default: // right
		return rect{x: b.Width - wallGap - item.depth, y: c - item.width/2, w: item.depth, h: item.width}
	}
}

func (p *placer) sideLength(side string) float64 {
	if side == "top" || side == "bottom" {
		return p.room.Bounds.Width
	}
	return p.room.Bounds.Depth
}

func (p *placer) sideExtent(side string) float64 {
	if side == "top" || side == "bottom" {
		return p.room.Bounds.Depth
	}
	return p.room.Bounds.Width
}

func opposite(side string) string {
	switch side {
	case "top":
		return "bottom"
	case "bottom":
		return "top"
	case "left":
		return "right"
	default:
		return "left"
	}
}

func sideRotation(side string) float64 {
	switch side {
	case "top":
		return 0
	case "bottom":
		return 180
	case "left":
		return 90
	default:
		return 270
	}
}

// orderSides сортирует стороны по длине, длинные первыми.
// Ничья решается фиксированным порядком top, bottom, left, right.
func orderSides(room models.Room) []string {
	sides := []string{"top", "bottom", "left", "right"}
	length := func(s string) float64 {
		if s == "top" || s == "bottom" {
			return room.Bounds.Width
		}
		return room.Bounds.Depth
	}
	// Стабильная сортировка сохраняет фиксированный порядок при ничьей.
	for i := 1; i < len(sides); i++ {
		for j := i; j > 0 && length(sides[j]) > length(sides[j-1])+eps; j-- {
			sides[j], sides[j-1] = sides[j-1], sides[j]
		}
	}
	return sides
}

// doorBlocks проецирует дуги дверей комнаты на оси ее сторон.
func doorBlocks(room models.Room, walls []models.Wall, openings []models.Opening) map[string][]span {
	blocks := map[string][]span{}

	owned := map[string]models.Wall{}
	sideOf := map[string]string{}
	for _, w := range layout.RoomWalls(room.RoomID, walls) {
		if side := layout.WallSide(room, w); side != "" {
			owned[w.WallID] = w
			sideOf[w.WallID] = side
		}
	}

	for _, o := range openings {
		if o.Type != models.OpeningDoor {
			continue
		}
		w, ok := owned[o.WallID]
		if !ok {
			continue
		}
		side := sideOf[o.WallID]

		// Центр двери в координатах стороны комнаты.
		cx := w.Start.X + (w.End.X-w.Start.X)*o.PositionRatio
		cy := w.Start.Y + (w.End.Y-w.Start.Y)*o.PositionRatio
		var t float64
		if side == "top" || side == "bottom" {
			t = cx - room.Bounds.X
		} else {
			t = cy - room.Bounds.Y
		}

		radius := o.WidthM * swingFactor
		blocks[side] = append(blocks[side], span{start: t - radius, end: t + radius})
	}

	return blocks
}
