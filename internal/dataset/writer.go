// Package dataset persists saved records: one image + metadata pair per
// save, plus an incrementally appended per-class CSV export.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ganot/labelcap/internal/domain/record"
)

const (
	imagesDir = "images"
	metaDir   = "meta"
)

// Writer persists records under a dataset root.
type Writer struct {
	root   string
	csv    CSVOptions
	logger *slog.Logger
}

// Result reports what a successful persist produced. The caller uses
// ClassID to update statistics; the writer owns no counters.
type Result struct {
	ClassID   string
	Stem      string
	ImagePath string
	MetaPath  string
	CSVPath   string
}

// NewWriter creates a writer rooted at root. Directories are created on
// first persist.
func NewWriter(root string, opts CSVOptions, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{root: root, csv: opts.Normalized(), logger: logger}
}

// Root returns the dataset root directory.
func (w *Writer) Root() string {
	return w.root
}

// Stem derives the artifact filename stem from a timestamp. Fixed-width
// date/time plus a microsecond suffix: lexicographic order equals
// chronological order, and saves one microsecond apart never collide.
func Stem(ts time.Time) string {
	return ts.Format("20060102_150405") + fmt.Sprintf("_%06d", ts.Nanosecond()/1000)
}

// Persist writes the record's image and metadata under parallel
// stem-keyed paths and appends one row to the class CSV. Steps run in
// order and stop at the first failure; the returned error names the step.
// Partial artifacts from a failed attempt may remain on disk but are never
// reported as success.
func (w *Writer) Persist(rec *record.Record) (*Result, error) {
	if rec.Frame == nil || len(rec.Frame.Data) == 0 {
		return nil, record.ErrNoFrame
	}

	if err := w.ensureLayout(); err != nil {
		return nil, fmt.Errorf("create dataset layout: %w", err)
	}

	stem := Stem(rec.Timestamp)
	imagePath := filepath.Join(w.root, imagesDir, stem+".jpg")
	metaPath := filepath.Join(w.root, metaDir, stem+".json")

	if err := os.WriteFile(imagePath, rec.Frame.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	meta := metadataFor(rec, stem+".jpg")
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	csvPath, err := w.appendClassCSV(rec, stem+".jpg")
	if err != nil {
		return nil, fmt.Errorf("append csv: %w", err)
	}

	w.logger.Info("sample saved",
		"class", rec.ClassID,
		"stem", stem,
		"csv", filepath.Base(csvPath),
	)

	return &Result{
		ClassID:   rec.ClassID,
		Stem:      stem,
		ImagePath: imagePath,
		MetaPath:  metaPath,
		CSVPath:   csvPath,
	}, nil
}

// ClassCSVPath returns the per-class export path for a class ID.
func (w *Writer) ClassCSVPath(classID string) string {
	return filepath.Join(w.root, strings.ToLower(classID)+".csv")
}

func (w *Writer) ensureLayout() error {
	for _, dir := range []string{imagesDir, metaDir} {
		if err := os.MkdirAll(filepath.Join(w.root, dir), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) appendClassCSV(rec *record.Record, imageFile string) (string, error) {
	path := w.ClassCSVPath(rec.ClassID)

	header := []string{"image_file"}
	row := []string{imageFile}
	if w.csv.IncludeTimestamp {
		header = append(header, "timestamp")
		row = append(row, rec.Timestamp.Format(time.RFC3339Nano))
	}
	names := rec.AttributeOrder
	if len(names) == 0 {
		names = slices.Sorted(maps.Keys(rec.Attributes))
	}
	for _, name := range names {
		header = append(header, name)
		row = append(row, w.csv.FormatValue(rec.Attributes[name]))
	}
	header = append(header, "capture_width", "capture_height", "capture_fps")
	row = append(row,
		strconv.Itoa(rec.Camera.Width),
		strconv.Itoa(rec.Camera.Height),
		strconv.FormatFloat(rec.Camera.FPS, 'f', -1, 64),
	)

	if err := w.csv.AppendRow(path, header, row); err != nil {
		return "", err
	}
	return path, nil
}
