// Mort Crafting Feasibility MCP Server
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rsned/mort-crafting-server/internal/crafting/config"
	"github.com/rsned/mort-crafting-server/internal/crafting/db"
	"github.com/rsned/mort-crafting-server/internal/crafting/engine"
	"github.com/rsned/mort-crafting-server/internal/crafting/mcp"
	"github.com/rsned/mort-crafting-server/internal/crafting/sync"
)

func main() {
	// Parse flags
	dbPath := flag.String("db", "data/crafting/crafting.db", "Path to SQLite database")
	configPath := flag.String("config", "", "Path to YAML selection config (defaults built in)")
	importDir := flag.String("import-dir", "", "Import every catalog .txt file in a directory")
	importSource := flag.String("import-source", "", "Import a single catalog .txt file")
	removeSource := flag.String("remove-source", "", "Remove one stored catalog source by name")
	clearSources := flag.Bool("clear-sources", false, "Remove all stored catalog sources before importing")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down...")
		cancel()
	}()

	// Open database
	database, err := db.OpenAndInit(ctx, *dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	// Handle import commands
	if *clearSources || *removeSource != "" || *importDir != "" || *importSource != "" {
		syncer := sync.NewSyncer(database)

		if *clearSources {
			if err := syncer.ClearAll(ctx); err != nil {
				logger.Error("failed to clear sources", "error", err)
				os.Exit(1)
			}
			logger.Info("catalog sources cleared")
		}

		if *removeSource != "" {
			if err := syncer.RemoveSource(ctx, *removeSource); err != nil {
				logger.Error("failed to remove catalog source", "source", *removeSource, "error", err)
				os.Exit(1)
			}
			logger.Info("catalog source removed", "source", *removeSource)
		}

		if *importDir != "" {
			logger.Info("importing catalog sources", "dir", *importDir)
			names, err := syncer.ImportSourcesFromDir(ctx, *importDir)
			if err != nil {
				logger.Error("failed to import catalog sources", "error", err)
				os.Exit(1)
			}
			logger.Info("catalog sources imported", "count", len(names), "sources", names)
		}

		if *importSource != "" {
			logger.Info("importing catalog source", "file", *importSource)
			if err := syncer.ImportSourceFromFile(ctx, *importSource); err != nil {
				logger.Error("failed to import catalog source", "error", err)
				os.Exit(1)
			}
			logger.Info("catalog source imported")
		}

		// If only doing imports, exit
		if flag.NArg() == 0 {
			return
		}
	}

	// Create engine and server
	eng := engine.New(database, cfg, logger)
	server := mcp.NewServer(eng, logger)

	// Run MCP server
	logger.Info("starting MCP server", "db", *dbPath,
		"sources", len(cfg.Selection.EnabledSources()),
		"tiers", len(cfg.Selection.EnabledTiers()),
		"special_policy", cfg.SpecialPolicy)
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "server stopped")
}
