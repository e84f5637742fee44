package style

// ============================================================
// Style Resolver
// ============================================================

// DefaultTheme используется, когда стиль не распознан.
const DefaultTheme = "modern"

// Descriptor описывает тему оформления: палитра, материалы,
// плотность расстановки мебели.
type Descriptor struct {
	Theme            string
	ColorPalette     []string
	MaterialBias     map[string]float64
	Materials        map[string]string // поверхность -> материал
	FurnitureDensity float64           // доля пресета мебели, 0..1
}

// Resolve возвращает дескриптор темы по ключевому слову.
// Неизвестное или пустое слово дает дефолтную тему. Без ошибок.
func Resolve(keyword string) Descriptor {
	if desc, ok := themes[keyword]; ok {
		return desc
	}
	return themes[DefaultTheme]
}

// Known сообщает, есть ли тема в таблице.
func Known(keyword string) bool {
	_, ok := themes[keyword]
	return ok
}

var themes = map[string]Descriptor{
	"modern": {
		Theme:        "modern",
		ColorPalette: []string{"#ffffff", "#cfcfcf", "#8a8a8a"},
		MaterialBias: map[string]float64{"wood": 0.5, "metal": 0.3, "concrete": 0.2},
		Materials: map[string]string{
			"walls":          "paint_white_matte",
			"floor_living":   "wood_oak_light",
			"floor_bedroom":  "wood_oak_light",
			"floor_kitchen":  "tile_ceramic_gray",
			"floor_bathroom": "tile_ceramic_gray",
		},
		FurnitureDensity: 1.0,
	},
	"scandinavian": {
		Theme:        "scandinavian",
		ColorPalette: []string{"#ffffff", "#e8e4da", "#a3b9c9"},
		MaterialBias: map[string]float64{"wood": 0.7, "metal": 0.1, "concrete": 0.2},
		Materials: map[string]string{
			"walls":          "paint_white_matte",
			"floor_living":   "wood_oak_light",
			"floor_bedroom":  "wood_oak_light",
			"floor_kitchen":  "wood_oak_light",
			"floor_bathroom": "tile_ceramic_white",
		},
		FurnitureDensity: 0.75,
	},
	"industrial": {
		Theme:        "industrial",
		ColorPalette: []string{"#3b3b3b", "#7a7a7a", "#b87333"},
		MaterialBias: map[string]float64{"wood": 0.2, "metal": 0.4, "concrete": 0.4},
		Materials: map[string]string{
			"walls":          "concrete_exposed",
			"floor_living":   "concrete_polished",
			"floor_bedroom":  "concrete_polished",
			"floor_kitchen":  "concrete_polished",
			"floor_bathroom": "tile_ceramic_gray",
		},
		FurnitureDensity: 0.9,
	},
	"minimalist": {
		Theme:        "minimalist",
		ColorPalette: []string{"#ffffff", "#f2f2f2", "#d9d9d9"},
		MaterialBias: map[string]float64{"wood": 0.4, "metal": 0.2, "concrete": 0.4},
		Materials: map[string]string{
			"walls":          "paint_white_matte",
			"floor_living":   "concrete_polished",
			"floor_bedroom":  "wood_oak_light",
			"floor_kitchen":  "tile_ceramic_gray",
			"floor_bathroom": "tile_ceramic_gray",
		},
		FurnitureDensity: 0.5,
	},
	"rustic": {
		Theme:        "rustic",
		ColorPalette: []string{"#8b5a2b", "#d2b48c", "#f5f0e1"},
		MaterialBias: map[string]float64{"wood": 0.8, "metal": 0.1, "concrete": 0.1},
		Materials: map[string]string{
			"walls":          "wood_panel_natural",
			"floor_living":   "wood_dark_oak",
			"floor_bedroom":  "wood_dark_oak",
			"floor_kitchen":  "tile_terracotta",
			"floor_bathroom": "tile_terracotta",
		},
		FurnitureDensity: 1.0,
	},
}
