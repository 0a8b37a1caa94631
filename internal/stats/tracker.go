// Package stats keeps running per-class save counts for the operator
// display.
package stats

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ganot/labelcap/internal/dataset"
)

// Tracker counts successful saves per class. Increment is the only mutator;
// there is no decrement, matching the tool's no-delete model.
type Tracker struct {
	classes []string
	counts  map[string]int
}

// New creates a tracker with zero counts for the given classes.
func New(classIDs []string) *Tracker {
	tracker := &Tracker{
		classes: slices.Clone(classIDs),
		counts:  make(map[string]int, len(classIDs)),
	}
	for _, classID := range classIDs {
		tracker.counts[classID] = 0
	}
	return tracker
}

// NewFromExports cold-starts the tracker from the per-class CSV exports
// under root: the data row count of each class's file, zero when absent.
// Re-running without intervening saves yields identical counts.
func NewFromExports(root string, classIDs []string, opts dataset.CSVOptions, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tracker := New(classIDs)
	for _, classID := range classIDs {
		path := filepath.Join(root, strings.ToLower(classID)+".csv")
		count, err := opts.CountRows(path)
		if err != nil {
			return nil, fmt.Errorf("count %s rows: %w", classID, err)
		}
		tracker.counts[classID] = count
	}

	logger.Info("statistics initialized", "counts", tracker.counts)
	return tracker, nil
}

// Increment records one successful save. Unknown classes are tracked too so
// counts never silently vanish.
func (t *Tracker) Increment(classID string) {
	if _, known := t.counts[classID]; !known {
		t.classes = append(t.classes, classID)
	}
	t.counts[classID]++
}

// Snapshot returns a copy of the per-class counts and the derived total.
func (t *Tracker) Snapshot() (map[string]int, int) {
	counts := make(map[string]int, len(t.counts))
	total := 0
	for classID, count := range t.counts {
		counts[classID] = count
		total += count
	}
	return counts, total
}

// Classes returns the tracked class IDs in configuration order.
func (t *Tracker) Classes() []string {
	return slices.Clone(t.classes)
}
