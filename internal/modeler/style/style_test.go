package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownThemes(t *testing.T) {
	for _, theme := range []string{"modern", "scandinavian", "industrial", "minimalist", "rustic"} {
		desc := Resolve(theme)
		assert.Equal(t, theme, desc.Theme)
		assert.NotEmpty(t, desc.ColorPalette)
		assert.NotEmpty(t, desc.Materials)
		assert.Greater(t, desc.FurnitureDensity, 0.0)
		assert.LessOrEqual(t, desc.FurnitureDensity, 1.0)
		assert.True(t, Known(theme))
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTheme, Resolve("").Theme)
	assert.Equal(t, DefaultTheme, Resolve("baroque").Theme)
	assert.False(t, Known("baroque"))
}

func TestMaterialBiasSumsToOne(t *testing.T) {
	for theme := range themes {
		desc := Resolve(theme)
		sum := 0.0
		for _, v := range desc.MaterialBias {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, theme)
	}
}

func TestMinimalistIsSparser(t *testing.T) {
	assert.Less(t, Resolve("minimalist").FurnitureDensity, Resolve("modern").FurnitureDensity)
}
