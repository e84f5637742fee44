package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"modeler-api/internal/modeler/models"
)

// ============================================================
// Renderer
// ============================================================

// Пиксели на метр в превью.
const pxPerMeter = 50.0

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает SVG-превью планировки из документа сцены.
func (r *Renderer) Render(doc *models.SceneDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	width := doc.House.WidthM * pxPerMeter
	height := doc.House.DepthM * pxPerMeter
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("document has empty footprint")
	}

	var elements []string
	elements = append(elements, r.renderRooms(doc)...)
	elements = append(elements, r.renderWalls(doc)...)
	elements = append(elements, r.renderOpenings(doc)...)
	elements = append(elements, r.renderFurniture(doc)...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderWalls(doc *models.SceneDocument) []string {
	var out []string

	for _, wall := range doc.Walls {
		thickness := wall.ThicknessM * pxPerMeter
		x1, y1 := wall.Start.X*pxPerMeter, wall.Start.Y*pxPerMeter
		x2, y2 := wall.End.X*pxPerMeter, wall.End.Y*pxPerMeter

		horizontal := math.Abs(x2-x1) >= math.Abs(y2-y1)

		if horizontal {
			w := math.Abs(x2 - x1)
			if w == 0 {
				w = thickness
			}
			x := math.Min(x1, x2)
			y := (y1+y2)/2 - thickness/2
			out = append(out, fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#000" />`,
				wall.WallID, formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(thickness)))
			continue
		}

		h := math.Abs(y2 - y1)
		if h == 0 {
			h = thickness
		}
		x := (x1+x2)/2 - thickness/2
		y := math.Min(y1, y2)

		out = append(out, fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#000" />`,
			wall.WallID, formatFloat(x), formatFloat(y), formatFloat(thickness), formatFloat(h)))
	}

	return out
}

func (r *Renderer) renderOpenings(doc *models.SceneDocument) []string {
	var out []string

	wallByID := map[string]models.Wall{}
	for _, w := range doc.Walls {
		wallByID[w.WallID] = w
	}

	for _, o := range doc.Openings {
		wall, ok := wallByID[o.WallID]
		if !ok {
			continue
		}

		dx := (wall.End.X - wall.Start.X) * pxPerMeter
		dy := (wall.End.Y - wall.Start.Y) * pxPerMeter
		cx := wall.Start.X*pxPerMeter + dx*o.PositionRatio
		cy := wall.Start.Y*pxPerMeter + dy*o.PositionRatio

		width := o.WidthM * pxPerMeter
		thickness := wall.ThicknessM * pxPerMeter
		horizontal := math.Abs(dx) >= math.Abs(dy)

		var w, h float64
		if horizontal {
			w, h = width, thickness
		} else {
			w, h = thickness, width
		}

		stroke := "#1f77b4" // окна синие
		switch o.Type {
		case models.OpeningDoor:
			stroke = "#d62728"
		case models.OpeningVentilation:
			stroke = "#2ca02c"
		}

		out = append(out, fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" />`,
			o.OpeningID, formatFloat(cx-w/2), formatFloat(cy-h/2), formatFloat(w), formatFloat(h), stroke))
	}

	return out
}

func (r *Renderer) renderRooms(doc *models.SceneDocument) []string {
	var out []string

	for _, room := range doc.Rooms {
		b := room.Bounds
		points := []models.Point{
			{X: b.X, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y},
			{X: b.X + b.Width, Y: b.Y + b.Depth},
			{X: b.X, Y: b.Y + b.Depth},
		}

		var path strings.Builder
		path.WriteString(`<path id="`)
		path.WriteString(room.RoomID)
		path.WriteString(`" d="M `)
		path.WriteString(formatPoint(scalePoint(points[0])))
		for _, p := range points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(scalePoint(p)))
		}
		path.WriteString(` Z" fill="none" stroke="#888" />`)

		out = append(out, path.String())
	}

	return out
}

func (r *Renderer) renderFurniture(doc *models.SceneDocument) []string {
	var out []string

	roomByID := map[string]models.Room{}
	for _, room := range doc.Rooms {
		roomByID[room.RoomID] = room
	}

	for _, f := range doc.Furniture {
		room, ok := roomByID[f.RoomID]
		if !ok {
			continue
		}

		// Позиция мебели хранится относительно начала комнаты.
		cx := (room.Bounds.X + f.Position.X) * pxPerMeter
		cy := (room.Bounds.Y + f.Position.Y) * pxPerMeter
		points := rectanglePoints(cx, cy, f.WidthM*pxPerMeter, f.DepthM*pxPerMeter, f.RotationDeg)

		var path strings.Builder
		path.WriteString(`<path id="`)
		path.WriteString(f.FurnitureID)
		path.WriteString(`" d="M `)
		path.WriteString(formatPoint(points[0]))
		for _, p := range points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(p))
		}
		path.WriteString(` Z" fill="none" stroke="#9467bd" />`)

		out = append(out, path.String())
	}

	return out
}

// ============================================================
// Geometry helpers
// ============================================================

func rectanglePoints(cx, cy, width, height, rotationDeg float64) []models.Point {
	halfW := width / 2
	halfH := height / 2

	points := []models.Point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	}

	if rotationDeg == 0 {
		return points
	}

	rad := rotationDeg * math.Pi / 180
	sin := math.Sin(rad)
	cos := math.Cos(rad)

	for i, p := range points {
		dx := p.X - cx
		dy := p.Y - cy
		points[i] = models.Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}

	return points
}

func scalePoint(p models.Point) models.Point {
	return models.Point{X: p.X * pxPerMeter, Y: p.Y * pxPerMeter}
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
