package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/dataset"
	"github.com/ganot/labelcap/internal/domain/record"
	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/ganot/labelcap/internal/domain/session"
	"github.com/ganot/labelcap/internal/export"
	"github.com/ganot/labelcap/internal/stats"
)

func testConsole(t *testing.T) *console {
	t.Helper()
	state, err := session.NewState([]*schema.ClassSpec{
		schema.Builtin("PET"),
		schema.Builtin("CAN"),
	}, nil)
	require.NoError(t, err)

	opts := dataset.DefaultCSVOptions()
	return &console{
		state:    state,
		holder:   &capture.Holder{},
		writer:   dataset.NewWriter(t.TempDir(), opts, nil),
		exporter: export.NewExporter(opts, nil),
		tracker:  stats.New(state.Classes()),
		camera:   capture.Settings{Width: 640, Height: 480, FPS: 30},
		runID:    "run-test",
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRun_StopsOnCancelWhileWaitingForInput(t *testing.T) {
	c := testConsole(t)
	ctx, cancel := context.WithCancel(context.Background())

	// A pipe with no writer blocks Read forever, like an idle terminal.
	in, _ := io.Pipe()

	done := make(chan struct{})
	go func() {
		c.run(ctx, in, io.Discard)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("console did not stop after cancellation")
	}
}

func TestRun_CommandErrorsKeepLoopAlive(t *testing.T) {
	c := testConsole(t)
	in := strings.NewReader("save\nset wet true\nclass CAN\nquit\n")
	var out bytes.Buffer

	c.run(context.Background(), in, &out)

	require.Contains(t, out.String(), record.ErrNoFrame.Error(), "failed save is reported")
	require.Contains(t, out.String(), "wet = true", "loop keeps processing after a failure")
	require.Equal(t, "CAN", c.state.CurrentClass())
}
