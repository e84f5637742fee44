package assembler

import (
	"errors"
	"testing"

	"modeler-api/internal/modeler/layout"
	"modeler-api/internal/modeler/models"
	"modeler-api/internal/modeler/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleFixture(t *testing.T, facts models.ExtractedFacts) (*models.SceneDocument, error) {
	t.Helper()
	rooms, walls, diags := layout.Synthesize(facts)
	openings, openDiags := layout.PlaceOpenings(rooms, walls)
	diags = append(diags, openDiags...)
	return Assemble(facts, style.Resolve(facts.Style), rooms, walls, openings, nil, diags)
}

func TestAssembleBuildsDocument(t *testing.T) {
	facts := models.ExtractedFacts{
		Bedrooms: 2, Bathrooms: 1, TotalAreaM2: 80,
		Style:    "modern",
		Explicit: models.FactFlags{Bedrooms: true, Area: true, Style: true},
	}

	doc, err := assembleFixture(t, facts)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "1.0", doc.Meta.Version)
	assert.Equal(t, "metric", doc.Meta.UnitSystem)
	assert.InDelta(t, 80, doc.House.TotalAreaM2, 1e-9)
	assert.Greater(t, doc.House.WidthM, 0.0)
	assert.Greater(t, doc.House.DepthM, 0.0)
	require.Len(t, doc.Levels, 1)
	assert.Equal(t, "ground_floor", doc.Levels[0].LevelID)
	assert.NotEmpty(t, doc.Exports.Formats)
}

func TestAssembleConfidenceBounds(t *testing.T) {
	doc, err := assembleFixture(t, models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, doc.Meta.Confidence, 0.05)
	assert.LessOrEqual(t, doc.Meta.Confidence, 0.99)
}

func TestAssembleConfidenceMonotonic(t *testing.T) {
	vague := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}
	precise := vague
	precise.Explicit = models.FactFlags{
		Bedrooms: true, Bathrooms: true, Kitchen: true,
		Living: true, Area: true, Style: true,
	}
	precise.TotalAreaM2 = 70

	vagueDoc, err := assembleFixture(t, vague)
	require.NoError(t, err)
	preciseDoc, err := assembleFixture(t, precise)
	require.NoError(t, err)

	assert.Greater(t, preciseDoc.Meta.Confidence, vagueDoc.Meta.Confidence)
}

func TestAssembleDiagnosticsLowerConfidence(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}

	clean, err := assembleFixture(t, facts)
	require.NoError(t, err)

	rooms, walls, _ := layout.Synthesize(facts)
	openings, _ := layout.PlaceOpenings(rooms, walls)
	noisy, err := Assemble(facts, style.Resolve(""), rooms, walls, openings, nil,
		[]string{"first fallback", "second fallback"})
	require.NoError(t, err)

	assert.Less(t, noisy.Meta.Confidence, clean.Meta.Confidence)
	assert.Equal(t, []string{"first fallback", "second fallback"}, noisy.Meta.Diagnostics)
}

func TestAssembleConstraintsDefaults(t *testing.T) {
	doc, err := assembleFixture(t, models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1})
	require.NoError(t, err)

	assert.Equal(t, "medium", doc.Constraints.BudgetLevel)
	assert.Equal(t, "NA", doc.Constraints.RegionCode)
	assert.InDelta(t, 0.9, doc.Constraints.Accessibility.DoorMinWidthM, 1e-9)
}

func TestAssembleMaterials(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1, Style: "rustic",
		Explicit: models.FactFlags{Style: true}}
	doc, err := assembleFixture(t, facts)
	require.NoError(t, err)

	assert.Equal(t, "rustic", doc.Styles.Theme)
	assert.Contains(t, doc.Materials, "walls")
	assert.Contains(t, doc.Materials, "floor_bedroom")
	assert.Contains(t, doc.Materials, "floor_bathroom")
}

func TestAssembleRejectsBrokenOwnership(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}
	rooms, walls, _ := layout.Synthesize(facts)
	openings, _ := layout.PlaceOpenings(rooms, walls)

	// Ломаем принадлежность внутренней стены.
	for i := range walls {
		if walls[i].Kind == models.WallInterior {
			walls[i].Rooms = walls[i].Rooms[:1]
			break
		}
	}

	_, err := Assemble(facts, style.Resolve(""), rooms, walls, openings, nil, nil)
	require.Error(t, err)

	var incons *InconsistencyError
	require.True(t, errors.As(err, &incons))
	assert.NotEmpty(t, incons.Violations)
	assert.Contains(t, err.Error(), "layout inconsistency")
}

func TestAssembleAllowsDiagnosedEntryDrop(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}
	rooms, walls, _ := layout.Synthesize(facts)
	openings, _ := layout.PlaceOpenings(rooms, walls)

	// Вход не поместился и был отброшен с диагностикой: документ
	// остается валидным, страдает только уверенность.
	kept := make([]models.Opening, 0, len(openings))
	for _, o := range openings {
		if !o.Entry {
			kept = append(kept, o)
		}
	}

	doc, err := Assemble(facts, style.Resolve(""), rooms, walls, kept, nil,
		[]string{"entry door dropped: no feasible exterior wall"})
	require.NoError(t, err)

	full, err := Assemble(facts, style.Resolve(""), rooms, walls, openings, nil, nil)
	require.NoError(t, err)
	assert.Less(t, doc.Meta.Confidence, full.Meta.Confidence)
}

func TestAssembleRejectsDuplicateEntries(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}
	rooms, walls, _ := layout.Synthesize(facts)
	openings, _ := layout.PlaceOpenings(rooms, walls)

	for _, o := range openings {
		if o.Entry {
			dup := o
			dup.OpeningID = "door_entry_2"
			dup.PositionRatio = o.PositionRatio / 2
			openings = append(openings, dup)
			break
		}
	}

	_, err := Assemble(facts, style.Resolve(""), rooms, walls, openings, nil, nil)
	var incons *InconsistencyError
	require.True(t, errors.As(err, &incons))
}

func TestAssembleRejectsFurnitureOutsideRoom(t *testing.T) {
	facts := models.ExtractedFacts{Bedrooms: 1, Bathrooms: 1}
	rooms, walls, _ := layout.Synthesize(facts)
	openings, _ := layout.PlaceOpenings(rooms, walls)

	stray := []models.Furniture{{
		FurnitureID: "bed_bedroom_1",
		Type:        "bed",
		RoomID:      rooms[0].RoomID,
		Position:    models.Point{X: -5, Y: -5},
		WidthM:      1.6,
		DepthM:      2.0,
		Scale:       1.0,
	}}

	_, err := Assemble(facts, style.Resolve(""), rooms, walls, openings, stray, nil)
	var incons *InconsistencyError
	require.True(t, errors.As(err, &incons))
}
