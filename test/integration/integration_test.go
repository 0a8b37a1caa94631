package integration_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/catalog"
	"github.com/ganot/labelcap/internal/dataset"
	"github.com/ganot/labelcap/internal/domain/record"
	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/ganot/labelcap/internal/domain/session"
	"github.com/ganot/labelcap/internal/export"
	"github.com/ganot/labelcap/internal/stats"
)

type testEnv struct {
	root    string
	state   *session.State
	writer  *dataset.Writer
	tracker *stats.Tracker
	camera  record.CameraSettings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	specs := []*schema.ClassSpec{
		schema.Builtin("PET"),
		schema.Builtin("CAN"),
		schema.Builtin("FOREIGN"),
	}
	state, err := session.NewState(specs, nil)
	require.NoError(t, err)

	root := t.TempDir()
	opts := dataset.DefaultCSVOptions()

	return &testEnv{
		root:    root,
		state:   state,
		writer:  dataset.NewWriter(root, opts, nil),
		tracker: stats.New(state.Classes()),
		camera:  record.CameraSettings{Width: 1280, Height: 720, FPS: 30},
	}
}

func (e *testEnv) save(t *testing.T) *dataset.Result {
	t.Helper()
	frame := &capture.Frame{
		Data:       []byte{0xff, 0xd8, 0xff, 0xd9},
		Width:      1280,
		Height:     720,
		CapturedAt: time.Now(),
	}
	rec, err := record.Build(e.state, frame, e.camera, "run-1")
	require.NoError(t, err)
	res, err := e.writer.Persist(rec)
	require.NoError(t, err)
	e.tracker.Increment(rec.ClassID)
	// Stems carry microsecond precision; keep successive saves apart.
	time.Sleep(2 * time.Microsecond)
	return res
}

func TestCollectExportStats(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.state.SetAttribute("wet", true))
	env.save(t)
	env.save(t)

	require.NoError(t, env.state.SwitchClass("CAN"))
	require.NoError(t, env.state.SetAttribute("finish", "opened"))
	env.save(t)

	require.NoError(t, env.state.SwitchClass("FOREIGN"))
	env.save(t)

	// Every save produced an image, a metadata file and a per-class CSV row.
	opts := dataset.DefaultCSVOptions()
	for class, want := range map[string]int{"PET": 2, "CAN": 1, "FOREIGN": 1} {
		rows, err := opts.CountRows(env.writer.ClassCSVPath(class))
		require.NoError(t, err)
		require.Equal(t, want, rows, "class %s", class)
	}

	// The batch export agrees with the incremental per-class counts.
	exporter := export.NewExporter(opts, nil)
	summary, err := exporter.ExportAll(env.root, "")
	require.NoError(t, err)
	require.Equal(t, 4, summary.Rows)
	require.Zero(t, summary.Skipped)

	data, err := os.ReadFile(summary.OutPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[0], "image_file")
	require.Contains(t, lines[0], "class")

	// A fresh tracker warmed from the exports sees the same totals.
	cold, err := stats.NewFromExports(env.root, env.state.Classes(), opts, nil)
	require.NoError(t, err)
	coldCounts, coldTotal := cold.Snapshot()
	liveCounts, liveTotal := env.tracker.Snapshot()
	require.Equal(t, liveCounts, coldCounts)
	require.Equal(t, liveTotal, coldTotal)
	require.Equal(t, 4, coldTotal)
}

func TestCatalogRebuildMatchesDataset(t *testing.T) {
	env := newTestEnv(t)

	env.save(t)
	require.NoError(t, env.state.SwitchClass("CAN"))
	env.save(t)
	env.save(t)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := catalog.New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	samples := catalog.NewCatalog(db, nil)
	ctx := context.Background()

	indexed, err := samples.Rebuild(ctx, env.root)
	require.NoError(t, err)
	require.Equal(t, 3, indexed)

	counts, err := samples.ClassCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"PET": 1, "CAN": 2}, counts)
}

func TestSavedArtifactsRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.state.SetAttribute("container_name", "бутылка 0.5"))
	res := env.save(t)

	img, err := os.ReadFile(res.ImagePath)
	require.NoError(t, err)
	require.NotEmpty(t, img)

	meta, err := dataset.ReadMeta(res.MetaPath)
	require.NoError(t, err)
	require.Equal(t, "PET", meta.ClassID)
	require.Equal(t, "бутылка 0.5", meta.Attributes["container_name"])
	require.Equal(t, filepath.Base(res.ImagePath), meta.ImageFile)

	// The per-class CSV row references the same image and encodes booleans
	// in the export vocabulary.
	data, err := os.ReadFile(res.CSVPath)
	require.NoError(t, err)
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, meta.ImageFile, rows[1][0])
	require.Contains(t, rows[1], "нет")
}
