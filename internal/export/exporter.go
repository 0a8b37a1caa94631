// Package export rebuilds an aggregate CSV from all persisted metadata,
// independent of the incremental per-class exports.
package export

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ganot/labelcap/internal/dataset"
)

// Summary reports one batch export invocation.
type Summary struct {
	Rows    int
	Skipped int
	OutPath string
}

// Exporter scans a dataset root and writes one aggregate export file.
type Exporter struct {
	csv    dataset.CSVOptions
	logger *slog.Logger
}

// NewExporter creates an exporter sharing the CSV conventions of the
// incremental per-class exports.
func NewExporter(opts dataset.CSVOptions, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{csv: opts.Normalized(), logger: logger}
}

// ExportAll scans every metadata artifact under root (any subdirectory
// layout), flattens each into a row and writes the aggregate file. Malformed
// files are logged and skipped; an unreadable root fails the invocation.
// When outPath is empty the file lands in root with the run timestamp in
// its name.
func (e *Exporter) ExportAll(root, outPath string) (*Summary, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}
	if outPath == "" {
		outPath = filepath.Join(root, "export_"+time.Now().Format("20060102_150405")+".csv")
	}

	paths, err := e.collectMetaPaths(root)
	if err != nil {
		return nil, err
	}

	var records []*dataset.Metadata
	var attrOrder []string
	seen := make(map[string]bool)
	skipped := 0

	for _, path := range paths {
		meta, err := dataset.ReadMeta(path)
		if err != nil {
			e.logger.Warn("skipping malformed metadata", "path", path, "error", err)
			skipped++
			continue
		}
		records = append(records, meta)
		// Column union in first-seen order over the sorted walk, so the
		// layout is deterministic for identical input.
		for _, name := range sortedKeys(meta.Attributes) {
			if !seen[name] {
				seen[name] = true
				attrOrder = append(attrOrder, name)
			}
		}
	}

	rows := e.buildRows(records, attrOrder)
	if err := e.csv.WriteAll(outPath, rows); err != nil {
		return nil, fmt.Errorf("write aggregate export: %w", err)
	}

	e.logger.Info("batch export complete",
		"rows", len(records),
		"skipped", skipped,
		"out", outPath,
	)
	return &Summary{Rows: len(records), Skipped: skipped, OutPath: outPath}, nil
}

func (e *Exporter) collectMetaPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			e.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan dataset root: %w", err)
	}
	return paths, nil
}

func (e *Exporter) buildRows(records []*dataset.Metadata, attrOrder []string) [][]string {
	header := []string{"image_file", "class"}
	if e.csv.IncludeTimestamp {
		header = append(header, "timestamp")
	}
	for _, name := range attrOrder {
		header = append(header, "attr_"+name)
	}
	header = append(header, "capture_width", "capture_height", "capture_fps", "session")

	rows := [][]string{header}
	for _, meta := range records {
		row := []string{meta.ImageFile, meta.ClassID}
		if e.csv.IncludeTimestamp {
			row = append(row, meta.Timestamp)
		}
		for _, name := range attrOrder {
			value, ok := meta.Attributes[name]
			if !ok {
				// Attribute from another class's schema: blank, not an error.
				row = append(row, "")
				continue
			}
			row = append(row, e.csv.FormatValue(value))
		}
		row = append(row,
			strconv.Itoa(meta.Capture.Width),
			strconv.Itoa(meta.Capture.Height),
			strconv.FormatFloat(meta.Capture.FPS, 'f', -1, 64),
			meta.Session,
		)
		rows = append(rows, row)
	}
	return rows
}

// Map iteration order is random; sort so first-seen is well defined.
func sortedKeys(values map[string]any) []string {
	return slices.Sorted(maps.Keys(values))
}
