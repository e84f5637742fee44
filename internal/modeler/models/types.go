package models

// ============================================================
// Room types & privacy
// ============================================================

const (
	RoomBedroom  = "bedroom"
	RoomBathroom = "bathroom"
	RoomKitchen  = "kitchen"
	RoomLiving   = "living"
	RoomHallway  = "hallway"
	RoomStorage  = "storage"
)

const (
	PrivacyPublic      = "public"
	PrivacySemiPrivate = "semi-private"
	PrivacyPrivate     = "private"
)

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================
// Extracted facts
// ============================================================

// FactFlags отмечает, какие факты пришли из текста, а какие — дефолты.
type FactFlags struct {
	Bedrooms      bool
	Bathrooms     bool
	Kitchen       bool
	Living        bool
	Area          bool
	Style         bool
	Budget        bool
	Accessibility bool
}

// ExtractedFacts — результат лексического разбора запроса.
// Создается один раз и дальше не меняется.
type ExtractedFacts struct {
	Bedrooms     int
	Bathrooms    int
	Kitchens     int
	LivingRooms  int
	Hallways     int
	StorageRooms int

	TotalAreaM2 float64 // 0 = не указана
	Style       string  // "" = не указан
	Wheelchair  bool
	BudgetLevel string // "" = не указан
	RegionCode  string // "" = не указан

	Explicit FactFlags
}

// ============================================================
// Scene document structures
// ============================================================

type Meta struct {
	Version     string   `json:"version"`
	UnitSystem  string   `json:"unit_system"`
	Scale       float64  `json:"scale"`
	GeneratedBy string   `json:"generated_by"`
	Confidence  float64  `json:"confidence"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

type House struct {
	Type           string  `json:"type"`
	FootprintShape string  `json:"footprint_shape"`
	TotalAreaM2    float64 `json:"total_area_m2"`
	WidthM         float64 `json:"width_m"`
	DepthM         float64 `json:"depth_m"`
	CeilingHeightM float64 `json:"ceiling_height_m"`
	Floors         int     `json:"floors"`
}

type Level struct {
	LevelID    string  `json:"level_id"`
	ElevationM float64 `json:"elevation_m"`
	HeightM    float64 `json:"height_m"`
}

type RoomBounds struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

type Room struct {
	RoomID        string     `json:"room_id"`
	Name          string     `json:"name"`
	LevelID       string     `json:"level_id"`
	AreaM2        float64    `json:"area_m2"`
	Shape         string     `json:"shape"`
	Bounds        RoomBounds `json:"bounds"`
	AdjacentRooms []string   `json:"adjacent_rooms"`
	RoomType      string     `json:"room_type"`
	PrivacyLevel  string     `json:"privacy_level"`
}

const (
	WallExterior = "exterior"
	WallInterior = "interior"
)

type Wall struct {
	WallID      string   `json:"wall_id"`
	Start       Point    `json:"start"`
	End         Point    `json:"end"`
	HeightM     float64  `json:"height_m"`
	ThicknessM  float64  `json:"thickness_m"`
	LevelID     string   `json:"level_id"`
	Kind        string   `json:"kind"`  // exterior | interior
	Rooms       []string `json:"rooms"` // 1 комната для exterior, 2 для interior
	LoadBearing bool     `json:"load_bearing"`
}

const (
	OpeningDoor        = "door"
	OpeningWindow      = "window"
	OpeningVentilation = "ventilation"
)

type Opening struct {
	OpeningID     string  `json:"opening_id"`
	Type          string  `json:"type"` // door | window | ventilation
	WallID        string  `json:"wall_id"`
	PositionRatio float64 `json:"position_ratio"` // доля вдоль стены, строго (0,1)
	WidthM        float64 `json:"width_m"`
	HeightM       float64 `json:"height_m"`
	Swing         string  `json:"swing"`
	Transparent   bool    `json:"transparent"`
	Entry         bool    `json:"entry"` // главный вход, не более одного на здание
}

type Furniture struct {
	FurnitureID string  `json:"furniture_id"`
	Type        string  `json:"type"`
	RoomID      string  `json:"room_id"`
	Position    Point   `json:"position"` // относительно начала комнаты
	RotationDeg float64 `json:"rotation_deg"`
	Scale       float64 `json:"scale"`
	Preset      string  `json:"preset"`
	WidthM      float64 `json:"width_m"`
	DepthM      float64 `json:"depth_m"`
}

type Accessibility struct {
	Wheelchair    bool    `json:"wheelchair"`
	DoorMinWidthM float64 `json:"door_min_width_m"`
}

type Constraints struct {
	BudgetLevel   string        `json:"budget_level"`
	Accessibility Accessibility `json:"accessibility"`
	RegionCode    string        `json:"region_code"`
}

type Styles struct {
	Theme        string             `json:"theme"`
	ColorPalette []string           `json:"color_palette"`
	MaterialBias map[string]float64 `json:"material_bias"`
}

type Exports struct {
	Formats          []string `json:"formats"`
	IncludeTextures  bool     `json:"include_textures"`
	IncludeFurniture bool     `json:"include_furniture"`
	OptimizeMesh     bool     `json:"optimize_mesh"`
}

// SceneDocument — итоговый документ сцены. После сборки не изменяется.
type SceneDocument struct {
	Meta        Meta              `json:"meta"`
	House       House             `json:"house"`
	Levels      []Level           `json:"levels"`
	Rooms       []Room            `json:"rooms"`
	Walls       []Wall            `json:"walls"`
	Openings    []Opening         `json:"openings"`
	Furniture   []Furniture       `json:"furniture"`
	Materials   map[string]string `json:"materials"`
	Styles      Styles            `json:"styles"`
	Constraints Constraints       `json:"constraints"`
	Exports     Exports           `json:"exports"`
}
