package models

import "encoding/json"

// ============================================================
// User Model
// ============================================================

type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ============================================================
// Scene Record
// ============================================================

// SceneRecord — сохраненная генерация: запрос, уверенность и
// сам документ сцены как есть.
type SceneRecord struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Prompt     string          `json:"prompt"`
	Theme      string          `json:"theme"`
	Confidence float64         `json:"confidence"`
	Document   json.RawMessage `json:"document"`
	CreatedAt  string          `json:"created_at"`
}

// SceneSummary — запись списка без тела документа.
type SceneSummary struct {
	ID         string  `json:"id"`
	Prompt     string  `json:"prompt"`
	Theme      string  `json:"theme"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
}
