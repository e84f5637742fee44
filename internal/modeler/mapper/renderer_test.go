package mapper

import (
	"strings"
	"testing"

	"modeler-api/internal/modeler/models"
	"modeler-api/internal/modeler/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGeneratedScene(t *testing.T) {
	doc, err := pipeline.New().Generate("modern 2-bedroom apartment with kitchen")
	require.NoError(t, err)

	svg, err := NewRenderer().Render(doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0"`))
	assert.Contains(t, svg, "<svg xmlns=")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	// Каждая комната и стена попадает в превью по id.
	for _, r := range doc.Rooms {
		assert.Contains(t, svg, `id="`+r.RoomID+`"`)
	}
	for _, w := range doc.Walls {
		assert.Contains(t, svg, `id="`+w.WallID+`"`)
	}

	// Двери красные, окна синие.
	assert.Contains(t, svg, "#d62728")
	assert.Contains(t, svg, "#1f77b4")
}

func TestRenderNilDocument(t *testing.T) {
	_, err := NewRenderer().Render(nil)
	assert.Error(t, err)
}

func TestRenderEmptyFootprint(t *testing.T) {
	_, err := NewRenderer().Render(&models.SceneDocument{})
	assert.Error(t, err)
}
