package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"modeler-api/internal/auth/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_auth.sql"))
	return repo
}

func TestInitSeedsAdmin(t *testing.T) {
	repo := testRepo(t)

	admin, err := repo.GetByCredentials(context.Background(), "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Login)
	assert.NotEmpty(t, admin.ID)

	// Повторный Init не дублирует admin и не падает.
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_auth.sql"))
}

func TestGetByCredentialsRejectsWrongPassword(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByCredentials(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSceneArchiveRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	admin, err := repo.GetByCredentials(ctx, "admin", "admin")
	require.NoError(t, err)

	record := &models.SceneRecord{
		ID:         "scene-1",
		UserID:     admin.ID,
		Prompt:     "modern 2-bedroom apartment",
		Theme:      "modern",
		Confidence: 0.72,
		Document:   json.RawMessage(`{"meta":{"version":"1.0"}}`),
	}
	require.NoError(t, repo.SaveScene(ctx, record))

	list, err := repo.ListScenes(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "scene-1", list[0].ID)
	assert.Equal(t, "modern", list[0].Theme)
	assert.InDelta(t, 0.72, list[0].Confidence, 1e-9)
	assert.NotEmpty(t, list[0].CreatedAt)

	got, err := repo.GetScene(ctx, admin.ID, "scene-1")
	require.NoError(t, err)
	assert.Equal(t, record.Prompt, got.Prompt)
	assert.JSONEq(t, string(record.Document), string(got.Document))
}

func TestGetSceneChecksOwner(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	admin, err := repo.GetByCredentials(ctx, "admin", "admin")
	require.NoError(t, err)

	require.NoError(t, repo.SaveScene(ctx, &models.SceneRecord{
		ID: "scene-1", UserID: admin.ID, Prompt: "p", Document: json.RawMessage(`{}`),
	}))

	_, err = repo.GetScene(ctx, "someone-else", "scene-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteScene(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	admin, err := repo.GetByCredentials(ctx, "admin", "admin")
	require.NoError(t, err)

	require.NoError(t, repo.SaveScene(ctx, &models.SceneRecord{
		ID: "scene-1", UserID: admin.ID, Prompt: "p", Document: json.RawMessage(`{}`),
	}))
	require.NoError(t, repo.DeleteScene(ctx, admin.ID, "scene-1"))

	err = repo.DeleteScene(ctx, admin.ID, "scene-1")
	require.Error(t, err)

	list, err := repo.ListScenes(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
