package validator

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Document Validator
// ============================================================

// Обязательные верхнеуровневые ключи документа сцены.
var requiredKeys = []string{
	"meta", "house", "levels", "rooms", "walls", "openings",
	"furniture", "materials", "styles", "constraints", "exports",
}

// Report — результат проверки формы документа.
type Report struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
	Rooms      int      `json:"rooms"`
	Walls      int      `json:"walls"`
	Openings   int      `json:"openings"`
	Confidence float64  `json:"confidence"`
}

// Validate проверяет, что JSON документа содержит все обязательные
// ключи и базовые поля meta/house. Проверяется форма, не геометрия.
func Validate(data []byte) Report {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Report{Errors: []string{fmt.Sprintf("invalid json: %v", err)}}
	}
	return ValidateMap(doc)
}

// ValidateMap проверяет уже разобранный документ.
func ValidateMap(doc map[string]any) Report {
	var report Report

	for _, key := range requiredKeys {
		if _, ok := doc[key]; !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("missing required key: %s", key))
		}
	}

	if meta, ok := doc["meta"].(map[string]any); ok {
		if _, ok := meta["version"]; !ok {
			report.Errors = append(report.Errors, "meta missing version")
		}
		if conf, ok := meta["confidence"].(float64); ok {
			report.Confidence = conf
			if conf < 0 || conf > 1 {
				report.Errors = append(report.Errors, "meta confidence outside [0,1]")
			}
		} else {
			report.Errors = append(report.Errors, "meta missing confidence")
		}
	}

	if house, ok := doc["house"].(map[string]any); ok {
		for _, field := range []string{"total_area_m2", "width_m", "depth_m"} {
			if _, ok := house[field]; !ok {
				report.Errors = append(report.Errors, "house missing "+field)
			}
		}
	}

	report.Rooms = listLen(doc["rooms"])
	report.Walls = listLen(doc["walls"])
	report.Openings = listLen(doc["openings"])
	report.Valid = len(report.Errors) == 0

	return report
}

func listLen(v any) int {
	if list, ok := v.([]any); ok {
		return len(list)
	}
	return 0
}
