package layout

import (
	"fmt"
	"math"
	"sort"

	"modeler-api/internal/modeler/models"
)

// ============================================================
// Floorplan Synthesizer
// ============================================================

const (
	aspectRatio       = 1.3 // корпус чуть вытянут в глубину
	exteriorThickness = 0.2
	interiorThickness = 0.15
	ceilingHeight     = 2.7
	levelID           = "ground_floor"

	// До трех комнат — одна полоса, дальше две.
	maxSingleBandRooms = 3

	// Ниже этого коэффициента площади фиксируем деградацию.
	minScaleFactor = 0.5
)

// Стандартные доли площади по типам комнат. Спальни — самая
// большая доля, ванные и коридоры — самая маленькая.
var areaShares = map[string]float64{
	models.RoomBedroom:  16.0,
	models.RoomLiving:   14.0,
	models.RoomKitchen:  10.0,
	models.RoomHallway:  4.5,
	models.RoomBathroom: 4.5,
	models.RoomStorage:  3.0,
}

// Synthesize строит комнаты и замкнутый контур стен по фактам.
// Не падает: слишком маленькая площадь дает пропорциональное
// уменьшение комнат и диагностику, а не ошибку.
func Synthesize(facts models.ExtractedFacts) ([]models.Room, []models.Wall, []string) {
	var diags []string

	specs := roomList(facts)

	total := facts.TotalAreaM2
	nominal := 0.0
	for _, spec := range specs {
		nominal += areaShares[spec.roomType]
	}
	if total <= 0 {
		total = nominal
	}

	scale := total / nominal
	if scale < minScaleFactor {
		diags = append(diags, fmt.Sprintf(
			"area %.0f m2 below minimum for %d rooms; scaled all rooms by %.2f",
			total, len(specs), scale))
	}

	areas := make([]float64, len(specs))
	for i, spec := range specs {
		areas[i] = areaShares[spec.roomType] * scale
	}

	rooms, width, depth := arrange(specs, areas, total)
	walls := buildWalls(rooms, width, depth)
	fillAdjacency(rooms, walls)

	return rooms, walls, diags
}

// ============================================================
// Room list
// ============================================================

type roomSpec struct {
	roomType string
	id       string
	name     string
}

// roomList разворачивает счетчики в упорядоченный список комнат.
// Кухня и гостиная добавляются по умолчанию, если не упомянуты:
// минимальный жилой набор.
func roomList(facts models.ExtractedFacts) []roomSpec {
	living := facts.LivingRooms
	if living == 0 {
		living = 1
	}
	kitchens := facts.Kitchens
	if kitchens == 0 {
		kitchens = 1
	}

	var specs []roomSpec
	add := func(roomType string, count int) {
		for i := 1; i <= count; i++ {
			specs = append(specs, roomSpec{
				roomType: roomType,
				id:       roomID(roomType, i),
				name:     roomName(roomType, i, count),
			})
		}
	}

	add(models.RoomLiving, living)
	add(models.RoomKitchen, kitchens)
	add(models.RoomBedroom, facts.Bedrooms)
	add(models.RoomBathroom, facts.Bathrooms)
	add(models.RoomHallway, facts.Hallways)
	add(models.RoomStorage, facts.StorageRooms)

	return specs
}

func roomID(roomType string, idx int) string {
	if roomType == models.RoomLiving {
		return fmt.Sprintf("living_room_%d", idx)
	}
	return fmt.Sprintf("%s_%d", roomType, idx)
}

func roomName(roomType string, idx, count int) string {
	base := map[string]string{
		models.RoomBedroom:  "Bedroom",
		models.RoomBathroom: "Bathroom",
		models.RoomKitchen:  "Kitchen",
		models.RoomLiving:   "Living room",
		models.RoomHallway:  "Hallway",
		models.RoomStorage:  "Storage",
	}[roomType]

	if count > 1 {
		return fmt.Sprintf("%s %d", base, idx)
	}
	return base
}

func privacyLevel(roomType string) string {
	switch roomType {
	case models.RoomBedroom, models.RoomBathroom:
		return models.PrivacyPrivate
	case models.RoomKitchen:
		return models.PrivacySemiPrivate
	default:
		return models.PrivacyPublic
	}
}

// ============================================================
// Band arrangement
// ============================================================

// arrange раскладывает комнаты горизонтальными полосами внутри
// прямоугольного корпуса. Каждая полоса касается внешнего контура,
// поэтому у любой комнаты есть наружная стена — достижимость
// гарантирована конструкцией, без коридора-коннектора.
func arrange(specs []roomSpec, areas []float64, total float64) ([]models.Room, float64, float64) {
	width := math.Sqrt(total / aspectRatio)
	depth := total / width

	numBands := 1
	if len(specs) > maxSingleBandRooms {
		numBands = 2
	}

	bandOf := assignBands(areas, numBands)

	// Комнаты внутри полосы сохраняют исходный порядок.
	bandRooms := make([][]int, numBands)
	bandArea := make([]float64, numBands)
	for i := range specs {
		b := bandOf[i]
		bandRooms[b] = append(bandRooms[b], i)
		bandArea[b] += areas[i]
	}

	rooms := make([]models.Room, len(specs))
	y := 0.0
	for b := 0; b < numBands; b++ {
		h := bandArea[b] / width
		x := 0.0
		for _, i := range bandRooms[b] {
			w := areas[i] / h
			rooms[i] = models.Room{
				RoomID:       specs[i].id,
				Name:         specs[i].name,
				LevelID:      levelID,
				AreaM2:       areas[i],
				Shape:        "rectangle",
				Bounds:       models.RoomBounds{X: x, Y: y, Width: w, Depth: h},
				RoomType:     specs[i].roomType,
				PrivacyLevel: privacyLevel(specs[i].roomType),
			}
			x += w
		}
		y += h
	}

	return rooms, width, depth
}

// assignBands жадно балансирует полосы по площади: большие комнаты
// раздаются первыми. Детерминированно (ничья — меньший индекс).
func assignBands(areas []float64, numBands int) []int {
	bandOf := make([]int, len(areas))
	if numBands == 1 {
		return bandOf
	}

	order := make([]int, len(areas))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return areas[order[a]] > areas[order[b]]
	})

	sums := make([]float64, numBands)
	for _, i := range order {
		best := 0
		for b := 1; b < numBands; b++ {
			if sums[b] < sums[best] {
				best = b
			}
		}
		bandOf[i] = best
		sums[best] += areas[i]
	}

	return bandOf
}
