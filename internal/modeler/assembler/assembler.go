package assembler

import (
	"modeler-api/internal/modeler/models"
	"modeler-api/internal/modeler/style"
)

// ============================================================
// Document Assembler
// ============================================================

const (
	docVersion  = "1.0"
	generatedBy = "Modeler API"
)

// Assemble собирает итоговый документ сцены и выполняет финальную
// структурную проверку. Единственный фатальный путь конвейера:
// нарушение инвариантов означает баг синтеза, а не плохой ввод.
func Assemble(
	facts models.ExtractedFacts,
	desc style.Descriptor,
	rooms []models.Room,
	walls []models.Wall,
	openings []models.Opening,
	furniture []models.Furniture,
	diags []string,
) (*models.SceneDocument, error) {
	house := houseSummary(facts, rooms, walls)

	doc := &models.SceneDocument{
		Meta: models.Meta{
			Version:     docVersion,
			UnitSystem:  "metric",
			Scale:       1.0,
			GeneratedBy: generatedBy,
			Confidence:  confidence(facts, diags),
			Diagnostics: diags,
		},
		House: house,
		Levels: []models.Level{
			{LevelID: "ground_floor", ElevationM: 0, HeightM: house.CeilingHeightM},
		},
		Rooms:     rooms,
		Walls:     walls,
		Openings:  openings,
		Furniture: furniture,
		Materials: materials(desc, rooms),
		Styles: models.Styles{
			Theme:        desc.Theme,
			ColorPalette: desc.ColorPalette,
			MaterialBias: desc.MaterialBias,
		},
		Constraints: constraints(facts),
		Exports: models.Exports{
			Formats:          []string{"glb", "fbx", "obj", "usd", "blend"},
			IncludeTextures:  true,
			IncludeFurniture: true,
			OptimizeMesh:     true,
		},
	}

	if violations := selfCheck(doc); len(violations) > 0 {
		return nil, &InconsistencyError{Violations: violations}
	}

	return doc, nil
}

// ============================================================
// Summary blocks
// ============================================================

func houseSummary(facts models.ExtractedFacts, rooms []models.Room, walls []models.Wall) models.House {
	total := 0.0
	for _, r := range rooms {
		total += r.AreaM2
	}

	width, depth := 0.0, 0.0
	for _, w := range walls {
		width = max(width, w.Start.X, w.End.X)
		depth = max(depth, w.Start.Y, w.End.Y)
	}

	return models.House{
		Type:           "residential",
		FootprintShape: "rectangle",
		TotalAreaM2:    total,
		WidthM:         width,
		DepthM:         depth,
		CeilingHeightM: 2.7,
		Floors:         1,
	}
}

func materials(desc style.Descriptor, rooms []models.Room) map[string]string {
	out := map[string]string{}
	if v, ok := desc.Materials["walls"]; ok {
		out["walls"] = v
	}
	for _, r := range rooms {
		key := "floor_" + r.RoomType
		if v, ok := desc.Materials[key]; ok {
			out[key] = v
		} else if v, ok := desc.Materials["floor_living"]; ok {
			// Для коридоров и кладовых берем покрытие гостиной.
			out[key] = v
		}
	}
	return out
}

func constraints(facts models.ExtractedFacts) models.Constraints {
	budget := facts.BudgetLevel
	if budget == "" {
		budget = "medium"
	}
	region := facts.RegionCode
	if region == "" {
		region = "NA"
	}
	return models.Constraints{
		BudgetLevel: budget,
		Accessibility: models.Accessibility{
			Wheelchair:    facts.Wheelchair,
			DoorMinWidthM: 0.9,
		},
		RegionCode: region,
	}
}

// ============================================================
// Confidence
// ============================================================

// Веса явно извлеченных фактов. Чем больше дефолтов, тем ниже
// итоговая уверенность — строго монотонно.
var factWeights = []struct {
	weight  float64
	present func(models.FactFlags) bool
}{
	{0.20, func(f models.FactFlags) bool { return f.Bedrooms }},
	{0.15, func(f models.FactFlags) bool { return f.Bathrooms }},
	{0.10, func(f models.FactFlags) bool { return f.Kitchen }},
	{0.10, func(f models.FactFlags) bool { return f.Living }},
	{0.20, func(f models.FactFlags) bool { return f.Area }},
	{0.15, func(f models.FactFlags) bool { return f.Style }},
	{0.05, func(f models.FactFlags) bool { return f.Budget }},
	{0.05, func(f models.FactFlags) bool { return f.Accessibility }},
}

const diagPenalty = 0.05

func confidence(facts models.ExtractedFacts, diags []string) float64 {
	score := 0.0
	for _, fw := range factWeights {
		if fw.present(facts.Explicit) {
			score += fw.weight
		}
	}

	conf := 0.2 + 0.7*score - diagPenalty*float64(len(diags))
	return clamp(conf, 0.05, 0.99)
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
