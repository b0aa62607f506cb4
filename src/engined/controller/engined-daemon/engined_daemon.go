// Package enginedaemon implements the engined business logic: it owns frontend
// sessions and fans each JSON-RPC request out to the startup machine, the
// command bridge, and the engine process.
package enginedaemon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/replkit/engined/src/engined/controller/bridge"
	"github.com/replkit/engined/src/engined/controller/startup"
	"github.com/replkit/engined/src/engined/entity"
	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/internal/engineproc"
	"github.com/replkit/engined/src/engined/internal/wire"
	"github.com/replkit/engined/src/engined/mapper"
	"github.com/replkit/engined/src/engined/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// Startup triggers.
	ContinueStartup(ctx context.Context) error
	StartupPhase(ctx context.Context) entity.Phase
	ChangeProject(ctx context.Context, path string) error
	RestartEngine(ctx context.Context) error

	// Engine operations.
	ExecuteCode(ctx context.Context, code string, execType wire.ExecutionType, breakpoints []int) (bridge.Result, error)
	InterruptEngine(ctx context.Context) error
	TestConnection(ctx context.Context) error
	GetWorkspaceVariables(ctx context.Context) error
	GetVariableValue(ctx context.Context, name string) (string, error)

	// Session lifecycle.
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
	Exit(ctx context.Context) error
	RequestFullShutdown(ctx context.Context) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Sessions   session.Repository
	IdeGateway notifier.Gateway
	Logger     *zap.SugaredLogger
	Config     config.Provider

	Startup    startup.Controller
	Bridge     bridge.Controller
	EngineProc engineproc.EngineProc
}

type controller struct {
	sessions   session.Repository
	shutdowner fx.Shutdowner
	ideGateway notifier.Gateway
	logger     *zap.SugaredLogger

	startup startup.Controller
	bridge  bridge.Controller
	proc    engineproc.EngineProc

	fullShutdown       bool
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	ctx := context.Background()

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	c := &controller{
		sessions:   p.Sessions,
		shutdowner: p.Shutdowner,
		ideGateway: p.IdeGateway,
		logger:     p.Logger,
		startup:    p.Startup,
		bridge:     p.Bridge,
		proc:       p.EngineProc,

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
	}
	c.refreshIdleTimer(ctx)

	return c, nil
}

func (c *controller) ContinueStartup(ctx context.Context) error {
	return c.startup.ContinueStartup(ctx)
}

func (c *controller) StartupPhase(ctx context.Context) entity.Phase {
	return c.startup.Phase()
}

func (c *controller) ChangeProject(ctx context.Context, path string) error {
	return c.startup.ChangeProject(ctx, path)
}

func (c *controller) RestartEngine(ctx context.Context) error {
	return c.startup.RestartEngine(ctx)
}

func (c *controller) ExecuteCode(ctx context.Context, code string, execType wire.ExecutionType, breakpoints []int) (bridge.Result, error) {
	return c.bridge.ExecuteCode(ctx, code, execType, breakpoints)
}

// InterruptEngine delivers an interrupt signal so a runaway execution can be
// abandoned without restarting the engine.
func (c *controller) InterruptEngine(ctx context.Context) error {
	return c.proc.Interrupt()
}

func (c *controller) TestConnection(ctx context.Context) error {
	return c.bridge.TestConnection(ctx)
}

func (c *controller) GetWorkspaceVariables(ctx context.Context) error {
	return c.bridge.RequestWorkspaceVariables(ctx)
}

func (c *controller) GetVariableValue(ctx context.Context, name string) (string, error) {
	return c.bridge.GetVariableValue(ctx, name)
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	s := mapper.UUIDToSession(id, conn)
	if err := c.ideGateway.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after
// the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, uuid uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	if err := c.ideGateway.DeregisterClient(ctx, uuid); err != nil {
		c.logger.Error(err)
	}
	return c.sessions.Delete(ctx, uuid)
}

// Exit cleans up an individual connection, or shuts down the whole server
// when a full shutdown was requested.
func (c *controller) Exit(ctx context.Context) error {
	if c.fullShutdown {
		// Zero out the timer to trigger immediate shutdown.
		c.idleTimerMu.Lock()
		c.idleTimer.Reset(0)
		c.idleTimerMu.Unlock()
		return nil
	}

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}
	return c.EndSession(ctx, s.UUID)
}

// RequestFullShutdown will set the controller to treat the subsequent Exit
// request as a request to exit the entire process.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.fullShutdown = true

	return nil
}

// refreshIdleTimer ensures that the service shuts down after a defined
// inactivity period with no connections.
func (c *controller) refreshIdleTimer(ctx context.Context) error {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call initializes new timer and leaves it running prior to first connection.
	if c.idleTimer == nil {
		c.idleTimer = time.NewTimer(c.idleTimeoutMinutes)
		go func() {
			<-c.idleTimer.C
			c.logger.Info("Shutdown signal received.")
			if err := c.startup.Shutdown(context.Background()); err != nil {
				c.logger.Errorw("stopping engine collaborators", "error", err)
			}
			if err := c.shutdowner.Shutdown(); err != nil {
				os.Exit(1)
			}
		}()
		return nil
	}

	// Subsequent calls stop the timer and reset it only if no connections are active.
	currentSessions, err := c.sessions.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("error resetting timeout: %w", err)
	}

	c.idleTimer.Stop()
	if currentSessions == 0 {
		c.idleTimer.Reset(c.idleTimeoutMinutes)
	}
	return nil
}
