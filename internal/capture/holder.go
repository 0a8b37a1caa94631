package capture

import "sync"

// Holder is the shared latest-frame cell. The capture refresh loop is the
// sole writer; the save path reads. Readers may observe a frame at most one
// refresh interval stale, which is acceptable for an interactive tool.
type Holder struct {
	mu    sync.RWMutex
	frame *Frame
}

// Store replaces the latest frame. A nil frame is ignored so a transient
// read failure never erases the last good capture.
func (h *Holder) Store(frame *Frame) {
	if frame == nil {
		return
	}
	h.mu.Lock()
	h.frame = frame
	h.mu.Unlock()
}

// Latest returns the most recent successfully captured frame, or nil when
// nothing has been captured yet.
func (h *Holder) Latest() *Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame
}
