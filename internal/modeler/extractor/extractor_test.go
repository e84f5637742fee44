package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDigitCounts(t *testing.T) {
	facts := Extract("A 2-bedroom apartment with modern kitchen")

	assert.Equal(t, 2, facts.Bedrooms)
	assert.True(t, facts.Explicit.Bedrooms)
	assert.Equal(t, 1, facts.Kitchens)
	assert.True(t, facts.Explicit.Kitchen)
	assert.Equal(t, "modern", facts.Style)
	assert.True(t, facts.Explicit.Style)

	// Ванная не упомянута: дефолт без флага.
	assert.Equal(t, 1, facts.Bathrooms)
	assert.False(t, facts.Explicit.Bathrooms)
}

func TestExtractWordCounts(t *testing.T) {
	facts := Extract("two-bedroom flat with three bathrooms")

	assert.Equal(t, 2, facts.Bedrooms)
	assert.Equal(t, 3, facts.Bathrooms)
	assert.True(t, facts.Explicit.Bedrooms)
	assert.True(t, facts.Explicit.Bathrooms)
}

func TestExtractAreaAndStyle(t *testing.T) {
	facts := Extract("Scandinavian 1-bedroom, 60 square meters")

	assert.Equal(t, 1, facts.Bedrooms)
	assert.Equal(t, 60.0, facts.TotalAreaM2)
	assert.True(t, facts.Explicit.Area)
	assert.Equal(t, "scandinavian", facts.Style)
}

func TestExtractAreaVariants(t *testing.T) {
	cases := map[string]float64{
		"flat of 45 sqm":        45,
		"apartment 45 m2":       45,
		"house 120.5 sq. m":     120.5,
		"90 square metres home": 90,
	}
	for text, want := range cases {
		facts := Extract(text)
		assert.Equal(t, want, facts.TotalAreaM2, text)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	facts := Extract("")

	assert.Equal(t, 1, facts.Bedrooms)
	assert.Equal(t, 1, facts.Bathrooms)
	assert.Equal(t, 0, facts.Kitchens)
	assert.Equal(t, 0.0, facts.TotalAreaM2)
	assert.Empty(t, facts.Style)
	assert.False(t, facts.Explicit.Bedrooms)
	assert.False(t, facts.Explicit.Bathrooms)
}

func TestExtractStyleFirstMentionWins(t *testing.T) {
	facts := Extract("rustic cabin with a modern kitchen")
	assert.Equal(t, "rustic", facts.Style)

	facts = Extract("modern loft, slightly industrial")
	assert.Equal(t, "modern", facts.Style)
}

func TestExtractConstraints(t *testing.T) {
	facts := Extract("wheelchair accessible luxury apartment in Europe")

	assert.True(t, facts.Wheelchair)
	assert.True(t, facts.Explicit.Accessibility)
	assert.Equal(t, "high", facts.BudgetLevel)
	assert.True(t, facts.Explicit.Budget)
	assert.Equal(t, "EU", facts.RegionCode)

	facts = Extract("budget studio")
	assert.Equal(t, "low", facts.BudgetLevel)
}

func TestExtractRegionWordBoundary(t *testing.T) {
	// "us" внутри слова регионом не считается.
	assert.Empty(t, Extract("spacious two-bedroom flat").RegionCode)
	assert.Empty(t, Extract("luxurious loft").RegionCode)

	assert.Equal(t, "NA", Extract("family home in the us").RegionCode)
	assert.Equal(t, "NA", Extract("a us apartment with kitchen").RegionCode)
}

func TestExtractSecondaryRooms(t *testing.T) {
	facts := Extract("flat with hallway, pantry and a living room")

	assert.Equal(t, 1, facts.Hallways)
	assert.Equal(t, 1, facts.StorageRooms)
	assert.Equal(t, 1, facts.LivingRooms)
	assert.True(t, facts.Explicit.Living)
}

func TestExtractDeterministic(t *testing.T) {
	text := "three bedroom two bathroom scandinavian house, 100 m2"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(text))
	}
}
