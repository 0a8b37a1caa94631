// Package publish stages the dataset for publication: it mirrors the
// collected artifacts into a staging directory, skipping files already
// staged, and regenerates the dataset card and per-class CSVs on every run.
package publish

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ganot/labelcap/internal/dataset"
)

// DatasetStats summarize the collected dataset for the card.
type DatasetStats struct {
	Images   int
	Metadata int
	Classes  map[string]int
}

// Summary reports one staging run.
type Summary struct {
	New       int
	Refreshed int
	OutDir    string
	Stats     *DatasetStats
}

// Publisher stages datasets using the shared CSV conventions.
type Publisher struct {
	csv    dataset.CSVOptions
	logger *slog.Logger
}

func New(opts dataset.CSVOptions, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{csv: opts.Normalized(), logger: logger}
}

// Stats counts images, metadata artifacts and per-class CSV rows under root.
func (p *Publisher) Stats(root string, classIDs []string) (*DatasetStats, error) {
	stats := &DatasetStats{Classes: make(map[string]int, len(classIDs))}

	images, err := filepath.Glob(filepath.Join(root, "images", "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("count images: %w", err)
	}
	stats.Images = len(images)

	meta, err := filepath.Glob(filepath.Join(root, "meta", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("count metadata: %w", err)
	}
	stats.Metadata = len(meta)

	for _, classID := range classIDs {
		path := filepath.Join(root, strings.ToLower(classID)+".csv")
		count, err := p.csv.CountRows(path)
		if err != nil {
			return nil, fmt.Errorf("count %s rows: %w", classID, err)
		}
		stats.Classes[classID] = count
	}
	return stats, nil
}

// Stage mirrors root into outDir. Files already staged are skipped so
// repeated runs only move new captures; the dataset card (README.md) and the
// per-class CSVs are regenerated every time since they grow with the data.
func (p *Publisher) Stage(root, outDir, repoID string, classIDs []string) (*Summary, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	stats, err := p.Stats(root, classIDs)
	if err != nil {
		return nil, err
	}

	summary := &Summary{OutDir: outDir, Stats: stats}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			p.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if entry.IsDir() {
			if hidden(entry.Name()) && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if hidden(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, rel)
		if _, err := os.Stat(target); err == nil {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("stage %s: %w", rel, err)
		}
		summary.New++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stage dataset: %w", err)
	}

	// Growing files are refreshed even when already staged.
	for _, classID := range classIDs {
		name := strings.ToLower(classID) + ".csv"
		source := filepath.Join(root, name)
		if _, err := os.Stat(source); err != nil {
			continue
		}
		if err := copyFile(source, filepath.Join(outDir, name)); err != nil {
			return nil, fmt.Errorf("refresh %s: %w", name, err)
		}
		summary.Refreshed++
	}

	card := DatasetCard(stats, repoID, classIDs)
	if err := os.WriteFile(filepath.Join(outDir, "README.md"), []byte(card), 0o644); err != nil {
		return nil, fmt.Errorf("write dataset card: %w", err)
	}
	summary.Refreshed++

	p.logger.Info("dataset staged",
		"out", outDir,
		"new", summary.New,
		"refreshed", summary.Refreshed,
	)
	return summary, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func copyFile(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
