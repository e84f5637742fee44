package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modeler-api/internal/auth/models"
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и убеждается в наличии admin.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureAdmin(ctx)
}

func (r *Repository) GetByCredentials(ctx context.Context, login, password string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, email, created_at
        FROM users
        WHERE login = ? AND password = ?
    `, login, password)

	var u models.User
	if err := row.Scan(&u.ID, &u.Login, &u.Password, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, email, created_at
        FROM users
        WHERE id = ?
    `, id)

	var u models.User
	if err := row.Scan(&u.ID, &u.Login, &u.Password, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &u, nil
}

// ============================================================
// Scene Archive
// ============================================================

func (r *Repository) SaveScene(ctx context.Context, s *models.SceneRecord) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO scenes (id, user_id, prompt, theme, confidence, document)
        VALUES (?, ?, ?, ?, ?, ?)
    `, s.ID, s.UserID, s.Prompt, s.Theme, s.Confidence, string(s.Document))
	if err != nil {
		return fmt.Errorf("insert scene: %w", err)
	}
	return nil
}

func (r *Repository) ListScenes(ctx context.Context, userID string) ([]models.SceneSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, prompt, theme, confidence, created_at
        FROM scenes
        WHERE user_id = ?
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.SceneSummary{}
	for rows.Next() {
		var s models.SceneSummary
		if err := rows.Scan(&s.ID, &s.Prompt, &s.Theme, &s.Confidence, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *Repository) GetScene(ctx context.Context, userID, sceneID string) (*models.SceneRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, prompt, theme, confidence, document, created_at
        FROM scenes
        WHERE user_id = ? AND id = ?
    `, userID, sceneID)

	var s models.SceneRecord
	var doc string
	if err := row.Scan(&s.ID, &s.UserID, &s.Prompt, &s.Theme, &s.Confidence, &doc, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	s.Document = []byte(doc)
	return &s, nil
}

func (r *Repository) DeleteScene(ctx context.Context, userID, sceneID string) error {
	res, err := r.db.ExecContext(ctx, `
        DELETE FROM scenes WHERE user_id = ? AND id = ?
    `, userID, sceneID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	sqlText := string(data)
	_, err = r.db.Exec(sqlText)
	if err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *Repository) ensureAdmin(ctx context.Context) error {
	_, err := r.GetByCredentials(ctx, "admin", "admin")
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), "not found") {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO users (id, login, password, email)
        VALUES (?, ?, ?, ?)
    `,
		"11111111-1111-1111-1111-111111111111",
		"admin",
		"admin",
		"admin@example.com",
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
