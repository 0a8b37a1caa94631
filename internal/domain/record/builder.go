package record

import (
	"time"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/domain/session"
)

// Build snapshots the session state and the given frame into a Record.
// The attribute values are deep-copied, so later edits in the session never
// reach an already-built record. The timestamp has sub-second resolution;
// two saves within the same second still get distinct identifiers. Build
// performs no I/O and touches no counters.
func Build(state *session.State, frame *capture.Frame, camera CameraSettings, runID string) (*Record, error) {
	if frame == nil || len(frame.Data) == 0 {
		return nil, ErrNoFrame
	}

	return &Record{
		Timestamp:      time.Now(),
		ClassID:        state.CurrentClass(),
		Attributes:     state.Values(),
		AttributeOrder: state.Spec().Names(),
		Frame:          frame,
		Camera:         camera,
		RunID:          runID,
	}, nil
}
