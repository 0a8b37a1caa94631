package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akamensky/argparse"
	"github.com/joho/godotenv"

	"github.com/ganot/labelcap/internal/config"
	"github.com/ganot/labelcap/internal/publish"
)

func main() {
	_ = godotenv.Load()

	parser := argparse.NewParser("publish", "Stage the dataset with a generated card for publication")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to config file", Default: "config.yaml"})
	root := parser.String("r", "root", &argparse.Options{Help: "Dataset root (defaults to the configured output dir)"})
	out := parser.String("o", "out", &argparse.Options{Help: "Staging directory", Default: "publish"})
	repoID := parser.String("", "repo-id", &argparse.Options{Help: "Target dataset repository ID for the card's usage section"})
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

	classIDs := make([]string, 0, len(cfg.Classes))
	for _, class := range cfg.Classes {
		classIDs = append(classIDs, class.ID)
	}

	publisher := publish.New(cfg.CSVOptions(), logger)
	summary, err := publisher.Stage(datasetRoot, *out, *repoID, classIDs)
	if err != nil {
		logger.Error("staging failed", "root", datasetRoot, "error", err)
		os.Exit(1)
	}

	fmt.Printf("staged %d new files (%d refreshed) in %s\n", summary.New, summary.Refreshed, summary.OutDir)
	fmt.Printf("dataset: %d images, %d annotations\n", summary.Stats.Images, summary.Stats.Metadata)
}
