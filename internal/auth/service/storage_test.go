package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoragePaths(t *testing.T) {
	s := NewFileStorage("exports")

	assert.Equal(t, filepath.Join("exports", "u1"), s.UserDir("u1"))
	assert.Equal(t, filepath.Join("exports", "u1", "s1.json"), s.ScenePath("u1", "s1"))
	assert.Equal(t, filepath.Join("exports", "u1", "s1.svg"), s.PreviewPath("u1", "s1"))
}

func TestStorageSaveFile(t *testing.T) {
	s := NewFileStorage(t.TempDir())

	path := s.ScenePath("u1", "s1")
	require.NoError(t, s.SaveFile("u1", path, []byte(`{"meta":{}}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"meta":{}}`, string(data))
}
