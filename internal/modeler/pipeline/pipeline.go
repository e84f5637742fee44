package pipeline

import (
	"modeler-api/internal/modeler/assembler"
	"modeler-api/internal/modeler/extractor"
	"modeler-api/internal/modeler/furniture"
	"modeler-api/internal/modeler/layout"
	"modeler-api/internal/modeler/models"
	"modeler-api/internal/modeler/style"
)

// ============================================================
// Generator
// ============================================================

// Generator прогоняет описание через шесть чистых стадий:
// факты -> стиль -> планировка -> проемы -> мебель -> документ.
// Состояния между вызовами нет, один Generator можно использовать
// из нескольких горутин.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate строит документ сцены из текстового описания.
// Неоднозначный ввод никогда не ошибка: все решается дефолтами и
// понижением уверенности. Единственная ошибка — внутреннее
// нарушение инвариантов планировки (*assembler.InconsistencyError).
func (g *Generator) Generate(prompt string) (*models.SceneDocument, error) {
	facts := extractor.Extract(prompt)
	desc := style.Resolve(facts.Style)

	rooms, walls, diags := layout.Synthesize(facts)

	openings, openDiags := layout.PlaceOpenings(rooms, walls)
	diags = append(diags, openDiags...)

	var items []models.Furniture
	for _, room := range rooms {
		placed, furnDiags := furniture.Place(room, desc, walls, openings)
		items = append(items, placed...)
		diags = append(diags, furnDiags...)
	}

	return assembler.Assemble(facts, desc, rooms, walls, openings, items, diags)
}
