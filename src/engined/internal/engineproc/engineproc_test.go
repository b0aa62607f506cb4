//go:build !windows

package engineproc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newProc(t *testing.T) EngineProc {
	t.Helper()
	lc := fxtest.NewLifecycle(t)
	e := New(Params{
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
		Lifecycle: lc,
	})
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return e
}

type lineCollector struct {
	mu    sync.Mutex
	lines []Line
}

func (c *lineCollector) collect(line Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *lineCollector) snapshot() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line{}, c.lines...)
}

func TestStartStreamsBothPipes(t *testing.T) {
	e := newProc(t)
	collector := &lineCollector{}
	e.RegisterLineHandler(collector.collect)

	exited := make(chan error, 1)
	e.RegisterExitHandler(func(err error) { exited <- err })

	require.NoError(t, e.Start(context.Background(), Spec{
		Path: "/bin/sh",
		Args: []string{"-c", "echo out-line; echo err-line 1>&2"},
	}))

	select {
	case err := <-exited:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not exit")
	}

	lines := collector.snapshot()
	require.Len(t, lines, 2)
	byText := map[string]bool{}
	for _, l := range lines {
		byText[l.Text] = l.Stderr
	}
	assert.False(t, byText["out-line"])
	assert.True(t, byText["err-line"])
	assert.False(t, e.Running())
}

func TestStartWhileRunning(t *testing.T) {
	e := newProc(t)
	require.NoError(t, e.Start(context.Background(), Spec{
		Path: "/bin/sh",
		Args: []string{"-c", "exec sleep 30"},
	}))
	t.Cleanup(func() { e.Stop(context.Background()) })

	assert.True(t, e.Running())
	_, ok := e.PID()
	assert.True(t, ok)

	err := e.Start(context.Background(), Spec{Path: "/bin/sh"})
	assert.ErrorContains(t, err, "already running")
}

func TestStartBadBinary(t *testing.T) {
	e := newProc(t)
	err := e.Start(context.Background(), Spec{Path: "/nonexistent/engine"})
	assert.Error(t, err)
	assert.False(t, e.Running())
}

func TestAbnormalExitReported(t *testing.T) {
	e := newProc(t)
	exited := make(chan error, 1)
	e.RegisterExitHandler(func(err error) { exited <- err })

	require.NoError(t, e.Start(context.Background(), Spec{
		Path: "/bin/sh",
		Args: []string{"-c", "exit 3"},
	}))

	select {
	case err := <-exited:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not exit")
	}
}

func TestStopTerminates(t *testing.T) {
	e := newProc(t)
	require.NoError(t, e.Start(context.Background(), Spec{
		Path: "/bin/sh",
		Args: []string{"-c", "exec sleep 30"},
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Stop(ctx))
	assert.False(t, e.Running())

	// Idempotent.
	assert.NoError(t, e.Stop(context.Background()))
}

func TestInterrupt(t *testing.T) {
	e := newProc(t)
	t.Run("not running", func(t *testing.T) {
		assert.Error(t, e.Interrupt())
	})

	t.Run("signals running engine", func(t *testing.T) {
		exited := make(chan error, 1)
		e.RegisterExitHandler(func(err error) { exited <- err })
		require.NoError(t, e.Start(context.Background(), Spec{
			Path: "/bin/sh",
			Args: []string{"-c", "exec sleep 30"},
		}))

		require.NoError(t, e.Interrupt())
		select {
		case err := <-exited:
			assert.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not exit after interrupt")
		}
	})
}

func TestRestartAfterExit(t *testing.T) {
	e := newProc(t)
	exited := make(chan error, 2)
	e.RegisterExitHandler(func(err error) { exited <- err })

	for i := 0; i < 2; i++ {
		require.NoError(t, e.Start(context.Background(), Spec{
			Path: "/bin/sh",
			Args: []string{"-c", "true"},
		}))
		select {
		case <-exited:
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not exit")
		}
	}
}
