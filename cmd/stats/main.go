package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/joho/godotenv"

	"github.com/ganot/labelcap/internal/catalog"
	"github.com/ganot/labelcap/internal/config"
)

func main() {
	_ = godotenv.Load()

	parser := argparse.NewParser("stats", "Rebuild the sample catalog and write a dataset statistics report")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to config file", Default: "config.yaml"})
	root := parser.String("r", "root", &argparse.Options{Help: "Dataset root (defaults to the configured output dir)"})
	dbPath := parser.String("", "db", &argparse.Options{Help: "Catalog database path (defaults to the configured one)"})
	out := parser.String("o", "out", &argparse.Options{Help: "Report output path", Default: "STATS.md"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	cfg, _, cfgErr := config.Load(*configPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if cfgErr != nil {
		logger.Warn("config file unusable, using defaults", "path", *configPath, "error", cfgErr)
	}

	datasetRoot := *root
	if datasetRoot == "" {
		datasetRoot = cfg.Data.OutputDir
	}
	dsn := *dbPath
	if dsn == "" {
		dsn = cfg.Catalog.Path
	}

	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		logger.Error("failed to create catalog directory", "path", dsn, "error", err)
		os.Exit(1)
	}
	db, err := catalog.New(dsn)
	if err != nil {
		logger.Error("failed to open catalog", "path", dsn, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Error("failed to migrate catalog", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	samples := catalog.NewCatalog(db, logger)

	indexed, err := samples.Rebuild(ctx, datasetRoot)
	if err != nil {
		logger.Error("rebuild failed", "root", datasetRoot, "error", err)
		os.Exit(1)
	}

	file, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create report", "path", *out, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := samples.WriteReport(ctx, file, cfg.CSVOptions()); err != nil {
		logger.Error("failed to write report", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("indexed %d samples, report written to %s\n", indexed, *out)
}
