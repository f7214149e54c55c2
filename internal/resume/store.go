// Package resume provides SQLite-backed persistence of resumes, scoped to
// an owner identity, with optimistic concurrency via content checksums.
package resume

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/resumeforge/resumeforge/internal/apperr"
	"github.com/resumeforge/resumeforge/internal/checksum"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resumes (
	id         TEXT PRIMARY KEY,
	owner      TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes(owner);
`

// Resume is one stored resume document.
type Resume struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListItem is a lightweight representation returned by list operations.
type ListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult is one search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Store defines resume persistence operations. Consumers should depend on
// this interface rather than the concrete *DB type.
type Store interface {
	Create(ctx context.Context, owner, title, content string) (*Resume, error)
	Get(ctx context.Context, owner, id string) (*Resume, error)
	Update(ctx context.Context, owner, id, title, content, ifMatch string) (*Resume, error)
	Delete(ctx context.Context, owner, id string) error
	List(ctx context.Context, owner string, limit, offset int) ([]ListItem, int, error)
	Search(ctx context.Context, owner, query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// DB wraps a sql.DB with resume operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("resume: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("resume: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("resume: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("resume: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Create stores a new resume for owner and returns it.
func (db *DB) Create(ctx context.Context, owner, title, content string) (*Resume, error) {
	now := time.Now().UTC()
	r := &Resume{
		ID:        uuid.NewString(),
		Owner:     owner,
		Title:     title,
		Content:   content,
		Checksum:  checksum.Sum([]byte(content)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("resume: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.ExecContext(ctx, `
		INSERT INTO resumes (id, owner, title, content, checksum, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Owner, r.Title, r.Content, r.Checksum, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("resume: insert: %w", err)
	}
	if err := ftsUpsert(tx, r.ID, r.Owner, r.Title, r.Content); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("resume: commit: %w", err)
	}
	return r, nil
}

// Get returns owner's resume by id.
func (db *DB) Get(ctx context.Context, owner, id string) (*Resume, error) {
	var r Resume
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, owner, title, content, checksum, created_at, updated_at
		FROM resumes WHERE id = ? AND owner = ?
	`, id, owner).Scan(&r.ID, &r.Owner, &r.Title, &r.Content, &r.Checksum, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resume: get: %w", err)
	}
	return &r, nil
}

// Update replaces title and content with optimistic concurrency: a non-empty
// ifMatch must equal the stored checksum. An empty title keeps the stored one.
func (db *DB) Update(ctx context.Context, owner, id, title, content, ifMatch string) (*Resume, error) {
	existing, err := db.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && ifMatch != existing.Checksum {
		return nil, apperr.ErrConflict
	}

	if title == "" {
		title = existing.Title
	}
	existing.Title = title
	existing.Content = content
	existing.Checksum = checksum.Sum([]byte(content))
	existing.UpdatedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("resume: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		UPDATE resumes SET title = ?, content = ?, checksum = ?, updated_at = ?
		WHERE id = ? AND owner = ?
	`, existing.Title, existing.Content, existing.Checksum, existing.UpdatedAt, id, owner)
	if err != nil {
		return nil, fmt.Errorf("resume: update: %w", err)
	}
	if err := ftsUpsert(tx, id, owner, existing.Title, existing.Content); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("resume: commit: %w", err)
	}
	return existing, nil
}

// Delete removes owner's resume by id.
func (db *DB) Delete(ctx context.Context, owner, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resume: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("resume: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	ftsDelete(tx, id)
	return tx.Commit()
}

// List returns owner's resumes, newest first, with the total count.
func (db *DB) List(ctx context.Context, owner string, limit, offset int) ([]ListItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes WHERE owner = ?`, owner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("resume: count: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, checksum, updated_at
		FROM resumes WHERE owner = ?
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, owner, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("resume: list: %w", err)
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Checksum, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}
