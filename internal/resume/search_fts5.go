//go:build sqlite_fts5

package resume

import (
	"context"
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS resumes_fts USING fts5(
			id UNINDEXED,
			owner UNINDEXED,
			title,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id, owner, title, content string) error {
	_, _ = tx.Exec(`DELETE FROM resumes_fts WHERE id = ?`, id)
	_, err := tx.Exec(`INSERT INTO resumes_fts (id, owner, title, content) VALUES (?, ?, ?, ?)`,
		id, owner, title, content)
	if err != nil {
		return fmt.Errorf("resume: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM resumes_fts WHERE id = ?`, id)
}

// Search performs an FTS5 full-text search over owner's resumes.
func (db *DB) Search(ctx context.Context, owner, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id,
		       title,
		       snippet(resumes_fts, 3, '<b>', '</b>', '...', 64)
		FROM resumes_fts
		WHERE resumes_fts MATCH ? AND owner = ?
		ORDER BY rank
		LIMIT ?
	`, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("resume: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
