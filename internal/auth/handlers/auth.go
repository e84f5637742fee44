package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"modeler-api/internal/auth/models"
	"modeler-api/internal/auth/repository"
	"modeler-api/internal/auth/service"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	repo       *repository.Repository
	sessions   *service.SessionManager
	storage    *service.FileStorage
	modelerURL string
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager, storage *service.FileStorage, modelerURL string) *AuthHandler {
	return &AuthHandler{
		repo:       repo,
		sessions:   sessions,
		storage:    storage,
		modelerURL: modelerURL,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Login выдает простой токен по паре login/password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	log.Printf("[AUTH] Login request")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if req.Login == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "login and password required"})
	}

	user, err := h.repo.GetByCredentials(context.Background(), req.Login, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token := h.sessions.Issue(user.ID)

	return c.JSON(loginResponse{
		Token: token,
		User:  mapUser(user),
	})
}

// Logout отзывает токен текущей сессии.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	h.sessions.Revoke(strings.TrimPrefix(auth, "Bearer "))
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetUser возвращает данные пользователя.
func (h *AuthHandler) GetUser(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	user, err := h.repo.GetByID(context.Background(), targetID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	return c.JSON(mapUser(user))
}

// GenerateScene генерирует сцену через Modeler и сохраняет ее в архив.
func (h *AuthHandler) GenerateScene(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	var req generateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "prompt required"})
	}

	log.Printf("[AUTH] Generate scene for user %s", targetID)

	doc, err := h.generateViaModeler(req.Prompt)
	if err != nil {
		log.Printf("[AUTH] modeler generate error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "modeler failed"})
	}

	record := &models.SceneRecord{
		ID:         uuid.NewString(),
		UserID:     targetID,
		Prompt:     req.Prompt,
		Theme:      docTheme(doc),
		Confidence: docConfidence(doc),
		Document:   doc,
	}

	if err := h.repo.SaveScene(context.Background(), record); err != nil {
		log.Printf("[AUTH] save scene error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save scene"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":         record.ID,
		"theme":      record.Theme,
		"confidence": record.Confidence,
		"document":   json.RawMessage(doc),
	})
}

// ListScenes возвращает список сохраненных сцен пользователя.
func (h *AuthHandler) ListScenes(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	list, err := h.repo.ListScenes(context.Background(), targetID)
	if err != nil {
		log.Printf("[AUTH] list scenes error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list scenes"})
	}

	return c.JSON(fiber.Map{"scenes": list})
}

// GetScene отдает полный документ сохраненной сцены.
func (h *AuthHandler) GetScene(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	scene, err := h.repo.GetScene(context.Background(), targetID, c.Params("sceneId"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
	}

	return c.JSON(scene)
}

// DeleteScene удаляет сцену из архива.
func (h *AuthHandler) DeleteScene(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	if err := h.repo.DeleteScene(context.Background(), targetID, c.Params("sceneId")); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// GetScenePreview рендерит сцену в SVG через Modeler.
func (h *AuthHandler) GetScenePreview(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	scene, err := h.repo.GetScene(context.Background(), targetID, c.Params("sceneId"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
	}

	svg, err := h.renderViaModeler(scene.Document)
	if err != nil {
		log.Printf("[AUTH] render preview error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "modeler failed"})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(svg)
}

// ExportScene выгружает документ и превью сцены в файловое хранилище.
func (h *AuthHandler) ExportScene(c fiber.Ctx) error {
	targetID, ok := h.authorizeUser(c)
	if !ok {
		return nil
	}

	scene, err := h.repo.GetScene(context.Background(), targetID, c.Params("sceneId"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
	}

	jsonPath := h.storage.ScenePath(targetID, scene.ID)
	if err := h.storage.SaveFile(targetID, jsonPath, scene.Document); err != nil {
		log.Printf("[AUTH] export scene error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to export scene"})
	}

	result := fiber.Map{"json": jsonPath}

	// Превью — по возможности: на ошибке рендера экспорт JSON не откатываем.
	if svg, err := h.renderViaModeler(scene.Document); err != nil {
		log.Printf("[AUTH] export preview error: %v", err)
	} else {
		svgPath := h.storage.PreviewPath(targetID, scene.ID)
		if err := h.storage.SaveFile(targetID, svgPath, svg); err != nil {
			log.Printf("[AUTH] save preview error: %v", err)
		} else {
			result["svg"] = svgPath
		}
	}

	return c.Status(http.StatusCreated).JSON(result)
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) authorize(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	userID, ok := h.sessions.Resolve(token)
	return userID, ok
}

// authorizeUser проверяет токен и что :id совпадает с владельцем токена.
// При отказе сам пишет ответ и возвращает ok=false.
func (h *AuthHandler) authorizeUser(c fiber.Ctx) (string, bool) {
	userID, ok := h.authorize(c)
	if !ok {
		_ = c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		return "", false
	}

	targetID := c.Params("id")
	if targetID == "" || targetID != userID {
		_ = c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		return "", false
	}
	return targetID, true
}

func mapUser(u *models.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// generateViaModeler отправляет prompt в Modeler /generate и возвращает документ сцены.
func (h *AuthHandler) generateViaModeler(prompt string) ([]byte, error) {
	payload, err := json.Marshal(fiber.Map{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	return h.callModeler("/generate", payload, "application/json")
}

// renderViaModeler отправляет документ в Modeler /render и возвращает SVG.
func (h *AuthHandler) renderViaModeler(doc []byte) ([]byte, error) {
	return h.callModeler("/render", doc, "application/json")
}

func (h *AuthHandler) callModeler(path string, body []byte, contentType string) ([]byte, error) {
	if h.modelerURL == "" {
		return nil, fmt.Errorf("modeler url is empty")
	}

	req, err := http.NewRequest(http.MethodPost, h.modelerURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("modeler status %d", resp.StatusCode)
	}

	return data, nil
}

// docTheme и docConfidence вынимают сводные поля из готового документа
// без полной десериализации схемы.
func docTheme(doc []byte) string {
	var partial struct {
		Styles struct {
			Theme string `json:"theme"`
		} `json:"styles"`
	}
	if err := json.Unmarshal(doc, &partial); err != nil {
		return ""
	}
	return partial.Styles.Theme
}

func docConfidence(doc []byte) float64 {
	var partial struct {
		Meta struct {
			Confidence float64 `json:"confidence"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(doc, &partial); err != nil {
		return 0
	}
	return partial.Meta.Confidence
}
