package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ganot/labelcap/internal/dataset"
)

// Catalog indexes persisted samples for counting and reporting.
type Catalog struct {
	db     *DB
	logger *slog.Logger
}

// NewCatalog creates a catalog over an opened database.
func NewCatalog(db *DB, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{db: db, logger: logger}
}

// Insert indexes one sample. Re-inserting the same stem replaces the row,
// so warming the catalog after a save and a later rebuild never conflict.
func (c *Catalog) Insert(ctx context.Context, meta *dataset.Metadata) error {
	attrs, err := json.Marshal(meta.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	stem := strings.TrimSuffix(meta.ImageFile, filepath.Ext(meta.ImageFile))
	query := `
		INSERT OR REPLACE INTO samples (
			stem, run_id, class_id, captured_at, width, height, fps, attributes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = c.db.ExecContext(ctx, query,
		stem,
		meta.Session,
		meta.ClassID,
		meta.Timestamp,
		meta.Capture.Width,
		meta.Capture.Height,
		meta.Capture.FPS,
		string(attrs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}
	return nil
}

// Rebuild wipes the index and rescans every metadata artifact under root.
// Malformed files are logged and skipped. Returns the number of indexed
// samples. Idempotent: rebuilding twice over the same tree gives the same
// catalog.
func (c *Catalog) Rebuild(ctx context.Context, root string) (int, error) {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM samples`); err != nil {
		return 0, fmt.Errorf("failed to clear catalog: %w", err)
	}

	indexed := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			c.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		meta, err := dataset.ReadMeta(path)
		if err != nil {
			c.logger.Warn("skipping malformed metadata", "path", path, "error", err)
			return nil
		}
		if err := c.Insert(ctx, meta); err != nil {
			return err
		}
		indexed++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rebuild catalog: %w", err)
	}

	c.logger.Info("catalog rebuilt", "samples", indexed)
	return indexed, nil
}

// ClassCounts returns the number of indexed samples per class.
func (c *Catalog) ClassCounts(ctx context.Context) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT class_id, COUNT(*) FROM samples GROUP BY class_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count classes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var classID string
		var count int
		if err := rows.Scan(&classID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan class count: %w", err)
		}
		counts[classID] = count
	}
	return counts, rows.Err()
}

// AttributeBreakdown returns value occurrence counts for one attribute of
// one class, rendered with the given CSV options' boolean tokens so the
// report matches the exports.
func (c *Catalog) AttributeBreakdown(ctx context.Context, classID, attribute string, opts dataset.CSVOptions) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT attributes FROM samples WHERE class_id = ?`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attributes: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan attributes: %w", err)
		}
		var attrs map[string]any
		if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
			continue
		}
		if value, ok := attrs[attribute]; ok {
			breakdown[opts.FormatValue(value)]++
		}
	}
	return breakdown, rows.Err()
}

// attributeNames returns the union of attribute names observed for a class,
// in first-seen order over capture time.
func (c *Catalog) attributeNames(ctx context.Context, classID string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT attributes FROM samples WHERE class_id = ? ORDER BY captured_at`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attributes: %w", err)
	}
	defer rows.Close()

	var names []string
	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan attributes: %w", err)
		}
		var attrs map[string]any
		if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
			continue
		}
		for _, name := range sortedKeys(attrs) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, rows.Err()
}
