package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/akamensky/argparse"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/capture/webcam"
	"github.com/ganot/labelcap/internal/catalog"
	"github.com/ganot/labelcap/internal/config"
	"github.com/ganot/labelcap/internal/dataset"
	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/ganot/labelcap/internal/domain/session"
	"github.com/ganot/labelcap/internal/export"
	"github.com/ganot/labelcap/internal/stats"
)

func main() {
	_ = godotenv.Load()

	parser := argparse.NewParser("collector", "Camera data collector for the bottle classifier dataset")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to config file", Default: "config.yaml"})
	device := parser.Int("d", "device", &argparse.Options{Help: "Camera device ID", Default: 0})
	width := parser.Int("", "width", &argparse.Options{Help: "Requested frame width", Default: 1280})
	height := parser.Int("", "height", &argparse.Options{Help: "Requested frame height", Default: 720})
	fps := parser.Float("", "fps", &argparse.Options{Help: "Requested frame rate", Default: 30.0})
	listDevices := parser.Flag("l", "list", &argparse.Options{Help: "List available camera devices and exit"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	cfg, source, cfgErr := config.Load(*configPath)

	// Logs go to stderr; stdout belongs to the operator console.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	switch {
	case cfgErr != nil:
		logger.Warn("config file unusable, using defaults", "path", *configPath, "error", cfgErr)
	case source == "":
		logger.Warn("config file not found, using defaults", "path", *configPath)
	}

	if *listDevices {
		for _, id := range webcam.Probe(cfg.Camera.MaxDevices) {
			fmt.Printf("camera %d\n", id)
		}
		return
	}

	specs := loadSpecs(cfg, logger)
	state, err := session.NewState(specs, logger)
	if err != nil {
		logger.Error("failed to initialize session", "error", err)
		os.Exit(1)
	}

	cam, err := webcam.Open(*device, capture.Settings{Width: *width, Height: *height, FPS: *fps},
		cfg.Data.Image.Quality, logger)
	if err != nil {
		logger.Error("failed to open camera", "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	writer := dataset.NewWriter(cfg.Data.OutputDir, cfg.CSVOptions(), logger)

	tracker, err := stats.NewFromExports(cfg.Data.OutputDir, state.Classes(), cfg.CSVOptions(), logger)
	if err != nil {
		logger.Warn("failed to load statistics from exports, starting from zero", "error", err)
		tracker = stats.New(state.Classes())
	}

	samples := openCatalog(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	holder := &capture.Holder{}
	interval := time.Duration(cfg.Camera.UpdateInterval * float64(time.Second))
	go capture.Pump(ctx, cam, holder, interval, logger)

	app := &console{
		state:    state,
		holder:   holder,
		writer:   writer,
		exporter: export.NewExporter(cfg.CSVOptions(), logger),
		tracker:  tracker,
		samples:  samples,
		camera:   cam.Settings(),
		runID:    uuid.NewString(),
		logger:   logger,
	}
	logger.Info("collector started",
		"run", app.runID,
		"output", cfg.Data.OutputDir,
		"classes", state.Classes(),
	)
	app.run(ctx, os.Stdin, os.Stdout)
}

// loadSpecs loads every configured class spec, falling back to the built-in
// spec with a warning so a bad file never aborts startup.
func loadSpecs(cfg config.Config, logger *slog.Logger) []*schema.ClassSpec {
	var specs []*schema.ClassSpec
	for _, class := range cfg.Classes {
		spec, err := schema.Load(class.ID, class.Spec)
		if err != nil {
			if builtin := schema.Builtin(class.ID); builtin != nil {
				logger.Warn("falling back to built-in class spec", "class", class.ID, "error", err)
				specs = append(specs, builtin)
				continue
			}
			logger.Error("skipping class without spec", "class", class.ID, "error", err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

func openCatalog(cfg config.Config, logger *slog.Logger) *catalog.Catalog {
	err := os.MkdirAll(filepath.Dir(cfg.Catalog.Path), 0o755)
	var db *catalog.DB
	if err == nil {
		db, err = catalog.New(cfg.Catalog.Path)
	}
	if err == nil {
		err = db.Migrate()
	}
	if err != nil {
		// The catalog is an index, not the source of truth; saving works
		// without it.
		logger.Warn("catalog unavailable", "path", cfg.Catalog.Path, "error", err)
		return nil
	}
	return catalog.NewCatalog(db, logger)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
