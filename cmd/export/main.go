package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akamensky/argparse"
	"github.com/joho/godotenv"

	"github.com/ganot/labelcap/internal/config"
	"github.com/ganot/labelcap/internal/export"
)

func main() {
	_ = godotenv.Load()

	parser := argparse.NewParser("export", "Merge all dataset metadata into a single CSV")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to config file", Default: "config.yaml"})
	root := parser.String("r", "root", &argparse.Options{Help: "Dataset root (defaults to the configured output dir)"})
	out := parser.String("o", "out", &argparse.Options{Help: "Output CSV path (defaults to export_<timestamp>.csv in the root)"})
	delimiter := parser.String("d", "delimiter", &argparse.Options{Help: "Field delimiter (defaults to the configured one)"})
	noTimestamp := parser.Flag("", "no-timestamp", &argparse.Options{Help: "Omit the timestamp column"})
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

	opts := cfg.CSVOptions()
	for _, r := range *delimiter {
		opts.Delimiter = r
		break
	}
	if *noTimestamp {
		opts.IncludeTimestamp = false
	}

	exporter := export.NewExporter(opts, logger)
	summary, err := exporter.ExportAll(datasetRoot, *out)
	if err != nil {
		logger.Error("export failed", "root", datasetRoot, "error", err)
		os.Exit(1)
	}

	fmt.Printf("exported %d rows to %s\n", summary.Rows, summary.OutPath)
	if summary.Skipped > 0 {
		fmt.Printf("skipped %d malformed metadata files\n", summary.Skipped)
	}
}
