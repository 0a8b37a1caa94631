// Package capture defines the boundary between the collector core and the
// camera. The core only ever sees encoded frames and resolved settings;
// device probing and decoding live behind FrameSource implementations.
package capture

import "time"

// Frame is one encoded camera frame. Data holds the full JPEG payload.
type Frame struct {
	Data       []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// Settings are the camera parameters negotiated once at startup. They stay
// constant for the whole run and are recorded with every sample.
type Settings struct {
	Width  int
	Height int
	FPS    float64
}
