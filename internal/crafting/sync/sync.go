// Package sync imports catalog text files into the database.
package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rsned/mort-crafting-server/internal/crafting/db"
)

// CatalogExt is the extension of catalog files picked up by directory imports.
const CatalogExt = ".txt"

// Syncer handles importing catalog sources.
type Syncer struct {
	db *db.DB
}

// NewSyncer creates a new Syncer.
func NewSyncer(database *db.DB) *Syncer {
	return &Syncer{db: database}
}

// ImportSourceFromFile imports one catalog file, stored under its base name.
func (s *Syncer) ImportSourceFromFile(ctx context.Context, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	return s.store(ctx, []db.StoredSource{src})
}

// ImportSourcesFromDir imports every catalog file in dir. It returns the
// names imported, sorted.
func (s *Syncer) ImportSourcesFromDir(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var sources []db.StoredSource
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), CatalogExt) {
			continue
		}
		src, err := readSource(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no %s files in %s", CatalogExt, dir)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })

	if err := s.store(ctx, sources); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	return names, nil
}

// RemoveSource deletes one imported source by name and refreshes the
// stored source count.
func (s *Syncer) RemoveSource(ctx context.Context, name string) error {
	store := db.NewSourceStore(s.db)
	if err := store.DeleteSource(ctx, name); err != nil {
		return err
	}

	count, err := store.CountSources(ctx)
	if err != nil {
		return err
	}
	return s.db.SetSyncMetadata(ctx, "sources_count", strconv.Itoa(count))
}

// ClearAll removes all imported sources.
func (s *Syncer) ClearAll(ctx context.Context) error {
	return db.NewSourceStore(s.db).ClearSources(ctx)
}

func (s *Syncer) store(ctx context.Context, sources []db.StoredSource) error {
	store := db.NewSourceStore(s.db)
	if err := store.BulkPutSources(ctx, sources); err != nil {
		return fmt.Errorf("inserting sources: %w", err)
	}

	count, err := store.CountSources(ctx)
	if err != nil {
		return err
	}

	// Update sync metadata
	if err := s.db.SetSyncMetadata(ctx, "sources_sync_id", uuid.NewString()); err != nil {
		return err
	}
	if err := s.db.SetSyncMetadata(ctx, "sources_last_sync", time.Now().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := s.db.SetSyncMetadata(ctx, "sources_count", strconv.Itoa(count)); err != nil {
		return err
	}

	return nil
}

// readSource reads a catalog file, dropping a UTF-8 byte order mark.
func readSource(path string) (db.StoredSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return db.StoredSource{}, fmt.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(data) {
		return db.StoredSource{}, fmt.Errorf("%s is not valid UTF-8", path)
	}

	body := strings.TrimPrefix(string(data), "\ufeff")
	return db.StoredSource{Name: filepath.Base(path), Body: body}, nil
}
