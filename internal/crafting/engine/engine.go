// Package engine contains the crafting query business logic.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/rsned/mort-crafting-server/internal/crafting/catalog"
	"github.com/rsned/mort-crafting-server/internal/crafting/config"
	"github.com/rsned/mort-crafting-server/internal/crafting/db"
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// Sources supplies catalog source texts to the engine.
type Sources interface {
	SourceText(ctx context.Context, name string) (string, error)
	ListSources(ctx context.Context) ([]crafting.SourceInfo, error)
}

// Engine is the main query engine for crafting operations. It holds no
// catalog between calls; every query loads its own snapshot.
type Engine struct {
	sources Sources
	cfg     config.Config
	logger  *slog.Logger
}

// New creates a new Engine reading sources from the database.
func New(database *db.DB, cfg config.Config, logger *slog.Logger) *Engine {
	return NewWithSources(db.NewSourceStore(database), cfg, logger)
}

// NewWithSources creates a new Engine over any source provider.
func NewWithSources(sources Sources, cfg config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if !cfg.SpecialPolicy.IsValid() {
		cfg.SpecialPolicy = crafting.PolicyExcludeFromLimit
	}
	return &Engine{
		sources: sources,
		cfg:     cfg,
		logger:  logger,
	}
}

// snapshot is a catalog loaded for a single query.
type snapshot struct {
	catalog *catalog.Catalog
	stats   catalog.LoadStats
	missing []string
}

// loadCatalog resolves the enabled sources and parses them. Sources that
// cannot be read contribute nothing.
func (e *Engine) loadCatalog(ctx context.Context, toggles []crafting.Toggle, policy crafting.SpecialPolicy) (*snapshot, error) {
	if len(toggles) == 0 {
		toggles = e.cfg.Selection.Sources
	}
	if !policy.IsValid() {
		policy = e.cfg.SpecialPolicy
	}

	var missing []string
	sources := make([]crafting.Source, 0, len(toggles))
	for _, t := range toggles {
		if !t.Enabled {
			sources = append(sources, crafting.Source{Name: t.Name})
			continue
		}

		text, err := e.sources.SourceText(ctx, t.Name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, db.ErrSourceNotFound) {
				e.logger.Warn("catalog source missing", "source", t.Name)
			} else {
				e.logger.Error("failed to read catalog source", "source", t.Name, "error", err)
			}
			missing = append(missing, t.Name)
			continue
		}
		sources = append(sources, crafting.Source{Name: t.Name, Text: text, Included: true})
	}

	var opts catalog.ParseOptions
	if policy == crafting.PolicyDropAtParse {
		opts.Drop = e.cfg.SpecialMaterials
	}

	cat, stats := catalog.Load(sources, opts)
	for _, bad := range stats.Malformed {
		e.logger.Debug("skipped catalog line", "source", bad.Source, "line", bad.Line, "error", bad.Err)
	}

	return &snapshot{catalog: cat, stats: stats, missing: missing}, nil
}

// enabledTiers returns the request's enabled tiers, or the configured ones
// when the request names none.
func (e *Engine) enabledTiers(toggles []crafting.Toggle) []string {
	if len(toggles) == 0 {
		return e.cfg.Selection.EnabledTiers()
	}
	return crafting.Selection{Tiers: toggles}.EnabledTiers()
}

// ListSources returns the stored catalog sources.
func (e *Engine) ListSources(ctx context.Context) (*crafting.ListSourcesResponse, error) {
	infos, err := e.sources.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	return &crafting.ListSourcesResponse{Sources: infos}, nil
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
