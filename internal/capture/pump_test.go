package capture_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/capture/mocks"
)

func TestPump_StoresFrames(t *testing.T) {
	frame := &capture.Frame{Data: []byte{0x01}, CapturedAt: time.Now()}

	source := new(mocks.FrameSource)
	source.On("Read", mock.Anything).Return(frame, nil)

	holder := &capture.Holder{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		capture.Pump(ctx, source, holder, time.Millisecond, nil)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return holder.Latest() == frame
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestPump_KeepsLastGoodFrameOnReadFailure(t *testing.T) {
	frame := &capture.Frame{Data: []byte{0x01}, CapturedAt: time.Now()}

	source := new(mocks.FrameSource)
	source.On("Read", mock.Anything).Return(frame, nil).Once()
	source.On("Read", mock.Anything).Return(nil, errors.New("device busy"))

	holder := &capture.Holder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		capture.Pump(ctx, source, holder, time.Millisecond, nil)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return holder.Latest() == frame
	}, time.Second, time.Millisecond)

	// Subsequent reads fail; the stored frame must survive.
	time.Sleep(10 * time.Millisecond)
	require.Same(t, frame, holder.Latest())

	cancel()
	<-done
}

func TestPump_StopsOnCancel(t *testing.T) {
	source := new(mocks.FrameSource)
	source.On("Read", mock.Anything).Return(nil, errors.New("no device")).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		capture.Pump(ctx, source, &capture.Holder{}, time.Millisecond, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after cancellation")
	}
}
