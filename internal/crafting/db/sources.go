package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// ErrSourceNotFound is returned when a catalog source has not been imported.
var ErrSourceNotFound = errors.New("catalog source not found")

// StoredSource is a catalog source as held in the database.
type StoredSource struct {
	Name string
	Body string
}

// SourceStore handles catalog source data access.
type SourceStore struct {
	db *DB
}

// NewSourceStore creates a new SourceStore.
func NewSourceStore(db *DB) *SourceStore {
	return &SourceStore{db: db}
}

// SourceText returns the text of the named source.
func (s *SourceStore) SourceText(ctx context.Context, name string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM catalog_sources WHERE name = ?`,
		name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("querying source %s: %w", name, err)
	}
	return body, nil
}

// ListSources returns every stored source, ordered by name.
func (s *SourceStore) ListSources(ctx context.Context) ([]crafting.SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, length(CAST(body AS BLOB)), line_count, imported_at
		FROM catalog_sources
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []crafting.SourceInfo
	for rows.Next() {
		var info crafting.SourceInfo
		if err := rows.Scan(&info.Name, &info.Bytes, &info.Lines, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		info.Size = humanize.Bytes(uint64(info.Bytes))
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// CountSources returns the number of stored sources.
func (s *SourceStore) CountSources(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_sources`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sources: %w", err)
	}
	return count, nil
}

// BulkPutSources inserts or replaces sources in a transaction.
func (s *SourceStore) BulkPutSources(ctx context.Context, sources []StoredSource) error {
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO catalog_sources (name, body, line_count, imported_at)
			VALUES (?, ?, ?, datetime('now'))
			ON CONFLICT(name) DO UPDATE SET
				body = excluded.body,
				line_count = excluded.line_count,
				imported_at = excluded.imported_at
		`)
		if err != nil {
			return fmt.Errorf("preparing source statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, src := range sources {
			if src.Name == "" {
				return fmt.Errorf("source with empty name")
			}
			if _, err := stmt.ExecContext(ctx, src.Name, src.Body, countLines(src.Body)); err != nil {
				return fmt.Errorf("inserting source %s: %w", src.Name, err)
			}
		}

		return nil
	})
}

// DeleteSource removes one source. Deleting a missing source is not an error.
func (s *SourceStore) DeleteSource(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM catalog_sources WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting source %s: %w", name, err)
	}
	return nil
}

// ClearSources removes all source data (for re-sync).
func (s *SourceStore) ClearSources(ctx context.Context) error {
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM catalog_sources`)
		return err
	})
}

func countLines(body string) int {
	if body == "" {
		return 0
	}
	n := strings.Count(body, "\n")
	if !strings.HasSuffix(body, "\n") {
		n++
	}
	return n
}
