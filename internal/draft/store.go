// Package draft persists unsent task forms in a local SQLite database
// so an abandoned form can be picked up again later.
package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/facildate/taskboard/internal/model"
)

// ErrNotFound is returned when no draft exists with the requested ID.
var ErrNotFound = errors.New("draft not found")

// Store holds task drafts in a local SQLite database.
type Store struct {
	db *sqlx.DB
}

// DefaultPath returns the default location of the drafts database,
// ~/.config/taskboard/drafts.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "drafts.db")
	}
	return filepath.Join(home, ".config", "taskboard", "drafts.db")
}

// NewStore opens (or creates) the drafts database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating drafts directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening drafts db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Save inserts or replaces a draft. Generates a UUID if ID is empty.
func (s *Store) Save(ctx context.Context, d model.TaskDraft) (model.TaskDraft, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
		d.CreatedAt = time.Now().UTC()
	}
	d.UpdatedAt = time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = d.UpdatedAt
	}
	if d.Status == "" {
		d.Status = model.StatusTodo
	}
	if d.Visibility == "" {
		d.Visibility = model.VisibilityPrivate
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO drafts (
			id, title, description, status, visibility,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Description, d.Status, d.Visibility,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return model.TaskDraft{}, fmt.Errorf("saving draft %s: %w", d.ID, err)
	}
	return d, nil
}

// List returns all drafts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]model.TaskDraft, error) {
	var drafts []model.TaskDraft
	err := s.db.SelectContext(ctx, &drafts,
		"SELECT * FROM drafts ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return drafts, nil
}

// Get retrieves a single draft by ID.
func (s *Store) Get(ctx context.Context, id string) (model.TaskDraft, error) {
	var d model.TaskDraft
	err := s.db.GetContext(ctx, &d, "SELECT * FROM drafts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaskDraft{}, ErrNotFound
	}
	if err != nil {
		return model.TaskDraft{}, fmt.Errorf("getting draft %s: %w", id, err)
	}
	return d, nil
}

// Delete removes a draft by ID. Deleting an absent draft is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	return nil
}
