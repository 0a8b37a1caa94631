package record_test

import (
	"testing"
	"time"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/domain/record"
	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/ganot/labelcap/internal/domain/session"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *session.State {
	t.Helper()
	spec := &schema.ClassSpec{
		ClassID: "PET",
		Attributes: []schema.Attribute{
			{Name: "wet", Kind: schema.KindBool},
			{Name: "fill", Kind: schema.KindEnum, Options: []string{"empty", "half", "full"}},
		},
	}
	require.NoError(t, spec.Validate())
	state, err := session.NewState([]*schema.ClassSpec{spec}, nil)
	require.NoError(t, err)
	return state
}

func TestBuild_SnapshotsState(t *testing.T) {
	state := newState(t)
	require.NoError(t, state.SetAttribute("fill", "full"))

	frame := &capture.Frame{Data: []byte{0xFF, 0xD8}, Width: 640, Height: 480, CapturedAt: time.Now()}
	camera := record.CameraSettings{Width: 640, Height: 480, FPS: 30}

	rec, err := record.Build(state, frame, camera, "run-1")
	require.NoError(t, err)
	require.Equal(t, "PET", rec.ClassID)
	require.Equal(t, map[string]any{"wet": false, "fill": "full"}, rec.Attributes)
	require.Same(t, frame, rec.Frame)
	require.Equal(t, camera, rec.Camera)
	require.Equal(t, "run-1", rec.RunID)
	require.False(t, rec.Timestamp.IsZero())
}

func TestBuild_DeepCopiesAttributes(t *testing.T) {
	state := newState(t)
	frame := &capture.Frame{Data: []byte{1}}

	rec, err := record.Build(state, frame, record.CameraSettings{}, "")
	require.NoError(t, err)

	// Edits after the snapshot must not leak into the record.
	require.NoError(t, state.SetAttribute("fill", "half"))
	require.Equal(t, "empty", rec.Attributes["fill"])
}

func TestBuild_NoFrame(t *testing.T) {
	state := newState(t)

	_, err := record.Build(state, nil, record.CameraSettings{}, "")
	require.ErrorIs(t, err, record.ErrNoFrame)

	_, err = record.Build(state, &capture.Frame{}, record.CameraSettings{}, "")
	require.ErrorIs(t, err, record.ErrNoFrame)
}

func TestBuild_TimestampHasSubSecondResolution(t *testing.T) {
	state := newState(t)
	frame := &capture.Frame{Data: []byte{1}}

	first, err := record.Build(state, frame, record.CameraSettings{}, "")
	require.NoError(t, err)

	// Wait at least one microsecond tick; saves this far apart must carry
	// distinguishable timestamps.
	time.Sleep(5 * time.Microsecond)

	second, err := record.Build(state, frame, record.CameraSettings{}, "")
	require.NoError(t, err)

	require.True(t, second.Timestamp.After(first.Timestamp))
	require.NotEqual(t, first.Timestamp.Format("20060102_150405.000000"),
		second.Timestamp.Format("20060102_150405.000000"))
}
