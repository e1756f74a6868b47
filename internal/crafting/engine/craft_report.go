package engine

import (
	"context"
	"time"

	"github.com/rsned/mort-crafting-server/internal/crafting/catalog"
	"github.com/rsned/mort-crafting-server/internal/crafting/inventory"
	"github.com/rsned/mort-crafting-server/pkg/crafting"
)

// CraftReport executes the craft_report tool logic: load the selected
// sources, keep the recipes of the enabled tiers and report what the
// inventory can make.
func (e *Engine) CraftReport(ctx context.Context, req crafting.CraftReportRequest) (*crafting.CraftReportResponse, error) {
	startTime := time.Now()

	snap, err := e.loadCatalog(ctx, req.Sources, req.Policy)
	if err != nil {
		return nil, err
	}

	all := snap.catalog.Recipes()
	filtered := catalog.FilterByTiers(all, e.enabledTiers(req.Tiers))

	inv, invStats := inventory.Parse(req.Inventory)
	if invStats.Skipped > 0 {
		e.logger.Debug("skipped inventory lines", "skipped", invStats.Skipped, "lines", invStats.Lines)
	}

	results := ComputeFeasibility(filtered, inv, e.cfg.SpecialMaterials)

	resp := &crafting.CraftReportResponse{
		Craftable: results,
		Tiers:     snap.catalog.Tiers(),
		Stats: crafting.ReportStats{
			SourcesLoaded:      snap.stats.SourcesLoaded,
			MissingSources:     snap.missing,
			MalformedLines:     len(snap.stats.Malformed),
			RecipesLoaded:      len(all),
			RecipesChecked:     len(filtered),
			InventoryItems:     len(inv),
			InventoryLinesSkip: invStats.Skipped,
			ProcessingTimeMs:   time.Since(startTime).Milliseconds(),
		},
	}
	if resp.Craftable == nil {
		resp.Craftable = []crafting.CraftabilityResult{}
	}

	e.logger.Debug("craft report",
		"recipes", len(all),
		"checked", len(filtered),
		"craftable", len(results),
		"missing_sources", len(snap.missing),
	)

	return resp, nil
}
