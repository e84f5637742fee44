package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"modeler-api/internal/modeler/models"
)

// ============================================================
// Lexical Extractor
// ============================================================

// Extract разбирает текстовое описание жилья в набор фактов.
// Никогда не падает: нераспознанный текст дает дефолтные факты
// (1 спальня, 1 ванная) с пометкой "не из текста".
func Extract(text string) models.ExtractedFacts {
	lower := strings.ToLower(text)

	facts := models.ExtractedFacts{
		Bedrooms:  1,
		Bathrooms: 1,
	}

	if n, ok := countFor(lower, bedroomKeywords); ok {
		facts.Bedrooms = n
		facts.Explicit.Bedrooms = true
	}
	if n, ok := countFor(lower, bathroomKeywords); ok {
		facts.Bathrooms = n
		facts.Explicit.Bathrooms = true
	}
	if containsAny(lower, kitchenKeywords) {
		facts.Kitchens = 1
		facts.Explicit.Kitchen = true
	}
	if containsAny(lower, livingKeywords) {
		facts.LivingRooms = 1
		facts.Explicit.Living = true
	}
	if containsAny(lower, hallwayKeywords) {
		facts.Hallways = 1
	}
	if containsAny(lower, storageKeywords) {
		facts.StorageRooms = 1
	}

	if area, ok := extractArea(lower); ok {
		facts.TotalAreaM2 = area
		facts.Explicit.Area = true
	}

	if style, ok := extractStyle(lower); ok {
		facts.Style = style
		facts.Explicit.Style = true
	}

	extractConstraints(lower, &facts)

	return facts
}

// ============================================================
// Vocabulary
// ============================================================

var (
	bedroomKeywords  = []string{"bedroom", "bed room", "bed"}
	bathroomKeywords = []string{"bathroom", "bath room", "bath", "toilet", "wc"}
	kitchenKeywords  = []string{"kitchen", "kitchenette"}
	livingKeywords   = []string{"living", "lounge", "sitting room"}
	hallwayKeywords  = []string{"hallway", "corridor", "entrance hall"}
	storageKeywords  = []string{"storage", "closet", "pantry", "utility room"}

	// Порядок фиксирован, но выигрывает первое вхождение в тексте.
	styleKeywords = []string{"scandinavian", "industrial", "minimalist", "modern", "rustic"}

	// Срез, а не map: порядок перебора должен быть детерминированным.
	wordNumbers = []struct {
		word string
		num  int
	}{
		{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
		{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	}

	areaPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sqm|sq\.?\s*m|m2|m²|square\s*met(?:er|re)s?)`)

	// Только отдельное слово: "us" входит в spacious, luxurious и т.п.
	usPattern = regexp.MustCompile(`\bus\b`)
)

// ============================================================
// Room counts
// ============================================================

// countFor ищет число, привязанное к ключевым словам типа комнаты.
// Явное число ("2 bedroom", "two-bedroom") всегда побеждает простое
// упоминание ключевого слова.
func countFor(text string, keywords []string) (int, bool) {
	for _, keyword := range keywords {
		// Числовые паттерны: "2 bedroom", "2-bedroom", "2bedroom"
		re := regexp.MustCompile(`(\d+)[\s-]*` + regexp.QuoteMeta(keyword))
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n, true
			}
		}

		// Словесные числа: "two bedroom", "two-bedroom"
		for _, wn := range wordNumbers {
			re := regexp.MustCompile(wn.word + `[\s-]+` + regexp.QuoteMeta(keyword))
			if re.MatchString(text) {
				return wn.num, true
			}
		}
	}

	if containsAny(text, keywords) {
		return 1, true
	}
	return 0, false
}

// ============================================================
// Area, style, constraints
// ============================================================

// extractArea возвращает первое упоминание площади в тексте.
func extractArea(text string) (float64, bool) {
	m := areaPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	area, err := strconv.ParseFloat(m[1], 64)
	if err != nil || area <= 0 {
		return 0, false
	}
	return area, true
}

// extractStyle выбирает стиль по первому вхождению в тексте.
func extractStyle(text string) (string, bool) {
	best := ""
	bestPos := len(text) + 1

	for _, style := range styleKeywords {
		if pos := strings.Index(text, style); pos >= 0 && pos < bestPos {
			best = style
			bestPos = pos
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

func extractConstraints(text string, facts *models.ExtractedFacts) {
	if containsAny(text, []string{"wheelchair", "accessible", "accessibility"}) {
		facts.Wheelchair = true
		facts.Explicit.Accessibility = true
	}

	switch {
	case containsAny(text, []string{"luxury", "premium", "high-end", "upscale"}):
		facts.BudgetLevel = "high"
		facts.Explicit.Budget = true
	case containsAny(text, []string{"budget", "affordable", "cheap", "low-cost"}):
		facts.BudgetLevel = "low"
		facts.Explicit.Budget = true
	}

	switch {
	case containsAny(text, []string{"europe", "european"}):
		facts.RegionCode = "EU"
	case containsAny(text, []string{"america", "american"}) || usPattern.MatchString(text):
		facts.RegionCode = "NA"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
