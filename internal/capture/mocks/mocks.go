package mocks

import (
	"context"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/stretchr/testify/mock"
)

// FrameSource is a mock for capture.FrameSource.
type FrameSource struct {
	mock.Mock
}

func (m *FrameSource) Read(ctx context.Context) (*capture.Frame, error) {
	args := m.Called(ctx)
	if frame, ok := args.Get(0).(*capture.Frame); ok {
		return frame, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FrameSource) Settings() capture.Settings {
	args := m.Called()
	return args.Get(0).(capture.Settings)
}

func (m *FrameSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
