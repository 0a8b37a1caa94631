// Package webcam implements capture.FrameSource over a local video device
// via gocv. This is the only package that touches OpenCV.
package webcam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/ganot/labelcap/internal/capture"
)

// ErrReadFailed indicates the device returned no frame.
var ErrReadFailed = errors.New("webcam read failed")

// Source reads frames from a local camera device and encodes them as JPEG.
type Source struct {
	device   int
	cap      *gocv.VideoCapture
	settings capture.Settings
	quality  int
	logger   *slog.Logger
}

// Open opens a device and negotiates the wanted mode. The device may settle
// on different values; Settings reports what it actually accepted.
func Open(device int, want capture.Settings, quality int, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if quality <= 0 || quality > 100 {
		quality = 95
	}

	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("open camera %d: device not available", device)
	}

	cam.Set(gocv.VideoCaptureFOURCC, cam.ToCodec("MJPG"))
	if want.Width > 0 {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(want.Width))
	}
	if want.Height > 0 {
		cam.Set(gocv.VideoCaptureFrameHeight, float64(want.Height))
	}
	if want.FPS > 0 {
		cam.Set(gocv.VideoCaptureFPS, want.FPS)
	}

	settings := capture.Settings{
		Width:  int(cam.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(cam.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    cam.Get(gocv.VideoCaptureFPS),
	}
	logger.Info("camera opened",
		"device", device,
		"width", settings.Width,
		"height", settings.Height,
		"fps", settings.FPS,
	)

	return &Source{
		device:   device,
		cap:      cam,
		settings: settings,
		quality:  quality,
		logger:   logger,
	}, nil
}

// Read captures one frame and returns it JPEG-encoded.
func (s *Source) Read(ctx context.Context) (*capture.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := s.cap.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("%w: device %d", ErrReadFailed, s.device)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, s.quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())

	return &capture.Frame{
		Data:       data,
		Width:      mat.Cols(),
		Height:     mat.Rows(),
		CapturedAt: time.Now(),
	}, nil
}

// Settings returns the negotiated camera parameters.
func (s *Source) Settings() capture.Settings {
	return s.settings
}

// Close releases the device.
func (s *Source) Close() error {
	return s.cap.Close()
}

// Probe reports which device IDs in [0, max) can be opened.
func Probe(max int) []int {
	var available []int
	for device := 0; device < max; device++ {
		cam, err := gocv.OpenVideoCapture(device)
		if err != nil {
			continue
		}
		if cam.IsOpened() {
			available = append(available, device)
		}
		cam.Close()
	}
	return available
}
