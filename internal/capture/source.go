package capture

import "context"

// FrameSource supplies encoded frames on demand. Implementations own the
// device handle; Read blocks for at most one capture interval.
type FrameSource interface {
	Read(ctx context.Context) (*Frame, error)
	Settings() Settings
	Close() error
}
