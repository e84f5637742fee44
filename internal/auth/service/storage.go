package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage раскладывает экспортированные сцены по каталогам
// пользователя: <root>/<userID>/<sceneID>.{json,svg}.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) UserDir(userID string) string {
	return filepath.Join(s.root, userID)
}

func (s *FileStorage) ScenePath(userID, sceneID string) string {
	return filepath.Join(s.UserDir(userID), sceneID+".json")
}

func (s *FileStorage) PreviewPath(userID, sceneID string) string {
	return filepath.Join(s.UserDir(userID), sceneID+".svg")
}

func (s *FileStorage) EnsureDir(userID string) error {
	path := s.UserDir(userID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir user dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(userID, target string, data []byte) error {
	if err := s.EnsureDir(userID); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
