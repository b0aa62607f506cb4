// Package engineproc owns the external engine subprocess: spawning it with
// the channel names on its command line, streaming its stdout and stderr line
// by line, and reporting its exit.
package engineproc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/replkit/engined/src/engined/internal/errors"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Spec describes one engine launch.
type Spec struct {
	Path string
	Args []string
	Env  []string
	Dir  string
}

// Line is one line of engine output with its originating stream.
type Line struct {
	Text   string
	Stderr bool
}

// LineHandler consumes one line of engine output.
type LineHandler func(line Line)

// ExitHandler is invoked once when the engine process exits. err is nil on a
// clean exit.
type ExitHandler func(err error)

// EngineProc supervises at most one engine subprocess at a time.
type EngineProc interface {
	// Start spawns the engine. Starting while a process is running is an error.
	Start(ctx context.Context, spec Spec) error
	Running() bool
	// PID returns the pid of the running engine, false when not running.
	PID() (int, bool)
	// Interrupt delivers an interrupt signal to the running engine.
	Interrupt() error
	// Stop terminates the engine, escalating to a kill if it does not exit
	// before ctx is done. No-op when nothing is running.
	Stop(ctx context.Context) error

	// RegisterLineHandler and RegisterExitHandler attach consumers before the
	// first Start. Registration is not synchronized against a running process.
	RegisterLineHandler(fn LineHandler)
	RegisterExitHandler(fn ExitHandler)
}

type engineProc struct {
	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}

	lineHandlers []LineHandler
	exitHandlers []ExitHandler

	logger *zap.SugaredLogger
	stats  tally.Scope
}

// Params are inbound parameters to construct the process supervisor.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Lifecycle fx.Lifecycle
}

// New creates the engine process supervisor.
func New(p Params) EngineProc {
	e := &engineProc{
		logger: p.Logger.With("component", "engineproc"),
		stats:  p.Stats.SubScope("engineproc"),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return e.Stop(ctx)
		},
	})

	return e
}

func (e *engineProc) RegisterLineHandler(fn LineHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lineHandlers = append(e.lineHandlers, fn)
}

func (e *engineProc) RegisterExitHandler(fn ExitHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exitHandlers = append(e.exitHandlers, fn)
}

func (e *engineProc) Start(ctx context.Context, spec Spec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return fmt.Errorf("engine already running with pid %d", e.cmd.Process.Pid)
	}

	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		e.stats.Counter("spawn_failures").Inc(1)
		return fmt.Errorf("spawning engine %q: %w", spec.Path, err)
	}
	e.stats.Counter("spawns").Inc(1)
	e.logger.Infow("engine started", "path", spec.Path, "pid", cmd.Process.Pid)

	e.cmd = cmd
	e.done = make(chan struct{})

	var pipes sync.WaitGroup
	pipes.Add(2)
	go e.streamLines(stdout, false, &pipes)
	go e.streamLines(stderr, true, &pipes)
	go e.wait(cmd, &pipes, e.done)

	return nil
}

func (e *engineProc) streamLines(r io.Reader, isStderr bool, pipes *sync.WaitGroup) {
	defer pipes.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := Line{Text: scanner.Text(), Stderr: isStderr}
		e.mu.Lock()
		handlers := e.lineHandlers
		e.mu.Unlock()
		for _, fn := range handlers {
			fn(line)
		}
	}
}

// wait blocks until the process exits, then notifies exit handlers.
// Pipe readers are drained first so handlers never see output after the exit
// notification.
func (e *engineProc) wait(cmd *exec.Cmd, pipes *sync.WaitGroup, done chan struct{}) {
	pipes.Wait()
	err := cmd.Wait()

	e.mu.Lock()
	if e.cmd == cmd {
		e.cmd = nil
		e.done = nil
	}
	handlers := e.exitHandlers
	e.mu.Unlock()

	if err != nil {
		e.stats.Counter("abnormal_exits").Inc(1)
		e.logger.Warnw("engine exited", "error", err)
	} else {
		e.logger.Infow("engine exited cleanly")
	}
	for _, fn := range handlers {
		fn(err)
	}
	close(done)
}

func (e *engineProc) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cmd != nil
}

func (e *engineProc) PID() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil {
		return 0, false
	}
	return e.cmd.Process.Pid, true
}

func (e *engineProc) Interrupt() error {
	e.mu.Lock()
	cmd := e.cmd
	e.mu.Unlock()

	if cmd == nil {
		return errors.ErrNotConnected
	}
	e.stats.Counter("interrupts").Inc(1)
	return interrupt(cmd.Process)
}

func (e *engineProc) Stop(ctx context.Context) error {
	e.mu.Lock()
	cmd := e.cmd
	done := e.done
	e.mu.Unlock()

	if cmd == nil {
		return nil
	}

	if err := terminate(cmd.Process); err != nil {
		e.logger.Warnw("terminating engine", "error", err)
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		e.stats.Counter("kills").Inc(1)
		e.logger.Warnw("engine did not exit in time, killing", "pid", cmd.Process.Pid)
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("killing engine: %w", err)
		}
		<-done
		return nil
	}
}
