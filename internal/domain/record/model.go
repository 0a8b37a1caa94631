package record

import (
	"time"

	"github.com/ganot/labelcap/internal/capture"
)

// CameraSettings are the run-constant capture parameters recorded with
// every sample.
type CameraSettings struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

// Record is an immutable snapshot of one save: the frame, the active class,
// a deep copy of its attribute values and the run context. It is owned by
// the persistence layer until written, then discarded.
type Record struct {
	Timestamp  time.Time
	ClassID    string
	Attributes map[string]any
	// AttributeOrder carries the spec's declared attribute order so tabular
	// exports get stable columns.
	AttributeOrder []string
	Frame          *capture.Frame
	Camera         CameraSettings
	RunID          string
}
