package capture

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Pump reads frames from source at the given interval and stores them in the
// holder until ctx is cancelled. Read failures are logged and skipped; the
// holder keeps the last good frame.
func Pump(ctx context.Context, source FrameSource, holder *Holder, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame, err := source.Read(ctx)
			if err != nil {
				logger.Debug("frame read failed", "error", err)
				continue
			}
			holder.Store(frame)
		}
	}
}
