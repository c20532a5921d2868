// Package history records listing queries the user visited so they can be
// reopened later with the "recent" command.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/secondwear/internal/dbx"
)

type Entry struct {
	ID        int64
	Query     string
	VisitedAt time.Time
}

type Repository interface {
	Add(ctx context.Context, query string) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, query string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO query_history (query, visited_at) VALUES (?, ?)`, query, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

// Recent returns distinct queries, most recently visited first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT MAX(id), query, MAX(visited_at)
		FROM query_history
		GROUP BY query
		ORDER BY MAX(id) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e       Entry
			visited int64
		)
		if err := rows.Scan(&e.ID, &e.Query, &visited); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.VisitedAt = time.Unix(visited, 0)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return result, nil
}
