package comments

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akiyama/shirabe/internal/models"
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not exist.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id, created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// ListByPost returns all comments for a post, oldest first.
func (r *SQLiteRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, parent_id, author, body, created_at
		 FROM comments WHERE post_id = ? ORDER BY created_at ASC, id ASC`, postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.ParentID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Append stores a new comment. A missing creation time is set to now.
func (r *SQLiteRepository) Append(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, parent_id, author, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.PostID, comment.ParentID, comment.Author, comment.Body, comment.CreatedAt,
	)
	return err
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
