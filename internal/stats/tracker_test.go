package stats_test

import (
	"testing"
	"time"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/dataset"
	"github.com/ganot/labelcap/internal/domain/record"
	"github.com/ganot/labelcap/internal/stats"
	"github.com/stretchr/testify/require"
)

var classes = []string{"PET", "CAN", "FOREIGN"}

func persistSample(t *testing.T, writer *dataset.Writer, classID string) {
	t.Helper()
	_, err := writer.Persist(&record.Record{
		Timestamp:      time.Now(),
		ClassID:        classID,
		Attributes:     map[string]any{"wet": false},
		AttributeOrder: []string{"wet"},
		Frame:          &capture.Frame{Data: []byte{0xFF}},
	})
	require.NoError(t, err)
	time.Sleep(2 * time.Microsecond)
}

func TestNew_ZeroCounts(t *testing.T) {
	tracker := stats.New(classes)
	counts, total := tracker.Snapshot()
	require.Equal(t, map[string]int{"PET": 0, "CAN": 0, "FOREIGN": 0}, counts)
	require.Zero(t, total)
}

func TestIncrementAndSnapshot(t *testing.T) {
	tracker := stats.New(classes)
	tracker.Increment("PET")
	tracker.Increment("PET")
	tracker.Increment("CAN")

	counts, total := tracker.Snapshot()
	require.Equal(t, 2, counts["PET"])
	require.Equal(t, 1, counts["CAN"])
	require.Equal(t, 0, counts["FOREIGN"])
	require.Equal(t, 3, total)
}

func TestSnapshot_NotAliased(t *testing.T) {
	tracker := stats.New(classes)
	counts, _ := tracker.Snapshot()
	counts["PET"] = 99

	fresh, _ := tracker.Snapshot()
	require.Zero(t, fresh["PET"])
}

func TestNewFromExports(t *testing.T) {
	root := t.TempDir()
	writer := dataset.NewWriter(root, dataset.DefaultCSVOptions(), nil)
	persistSample(t, writer, "PET")
	persistSample(t, writer, "PET")
	persistSample(t, writer, "CAN")

	tracker, err := stats.NewFromExports(root, classes, dataset.DefaultCSVOptions(), nil)
	require.NoError(t, err)

	counts, total := tracker.Snapshot()
	require.Equal(t, map[string]int{"PET": 2, "CAN": 1, "FOREIGN": 0}, counts)
	require.Equal(t, 3, total)
}

func TestNewFromExports_Idempotent(t *testing.T) {
	root := t.TempDir()
	writer := dataset.NewWriter(root, dataset.DefaultCSVOptions(), nil)
	persistSample(t, writer, "PET")

	first, err := stats.NewFromExports(root, classes, dataset.DefaultCSVOptions(), nil)
	require.NoError(t, err)
	second, err := stats.NewFromExports(root, classes, dataset.DefaultCSVOptions(), nil)
	require.NoError(t, err)

	firstCounts, firstTotal := first.Snapshot()
	secondCounts, secondTotal := second.Snapshot()
	require.Equal(t, firstCounts, secondCounts)
	require.Equal(t, firstTotal, secondTotal)
}

func TestNewFromExports_EmptyRoot(t *testing.T) {
	tracker, err := stats.NewFromExports(t.TempDir(), classes, dataset.DefaultCSVOptions(), nil)
	require.NoError(t, err)

	_, total := tracker.Snapshot()
	require.Zero(t, total)
}
