// Package startup drives the engine through its startup state machine: update
// check, binary check and install, process spawn, transport handshake, project
// activation, and language server launch. Triggers that arrive before startup
// completes are recorded and applied once it does.
package startup

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/replkit/engined/src/engined/controller/bridge"
	"github.com/replkit/engined/src/engined/controller/installer"
	"github.com/replkit/engined/src/engined/controller/lsp"
	"github.com/replkit/engined/src/engined/controller/monitor"
	"github.com/replkit/engined/src/engined/controller/plots"
	"github.com/replkit/engined/src/engined/entity"
	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/engineproc"
	"github.com/replkit/engined/src/engined/internal/fs"
	"github.com/replkit/engined/src/engined/internal/projwatch"
	"github.com/replkit/engined/src/engined/internal/transport"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_nameKey = "startup"

	// _activationTimeout bounds the wait for the engine's activation
	// confirmation so a silent engine cannot wedge startup.
	_activationTimeout = 30 * time.Second
	// _transportTimeout bounds the wait for the transport handshake.
	_transportTimeout = 60 * time.Second
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller runs the startup state machine and the restart, project switch,
// and shutdown triggers.
type Controller interface {
	// ContinueStartup advances the state machine until it completes, fails,
	// or parks waiting for an install callback. No-op in a terminal phase.
	ContinueStartup(ctx context.Context) error
	// Phase returns the current startup phase.
	Phase() entity.Phase

	// ChangeProject switches the active project environment. Before startup
	// completes the path is recorded and applied on completion.
	ChangeProject(ctx context.Context, path string) error
	// RestartEngine stops and respawns the engine process, reconnects the
	// transport, and reactivates the previously active project.
	RestartEngine(ctx context.Context) error
	// Shutdown stops the language server, the engine process, auxiliary
	// services, and the transport, in that order. Individual failures are
	// collected, never short-circuited.
	Shutdown(ctx context.Context) error
}

// Params are inbound parameters to construct the controller.
type Params struct {
	fx.In

	Config     config.Provider
	Installer  installer.Controller
	LSP        lsp.Controller
	Bridge     bridge.Controller
	Monitor    monitor.Monitor
	EngineProc engineproc.EngineProc
	Transport  transport.Transport
	Plots      plots.Controller
	ProjWatch  projwatch.Watcher
	Gateway    notifier.Gateway
	FS         fs.EngineFS
	Clock      clock.Clock
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type controller struct {
	cfg       entity.EngineConfig
	installer installer.Controller
	lsp       lsp.Controller
	bridge    bridge.Controller
	monitor   monitor.Monitor
	proc      engineproc.EngineProc
	transport transport.Transport
	plots     plots.Controller
	projwatch projwatch.Watcher
	gateway   notifier.Gateway
	fs        fs.EngineFS
	clock     clock.Clock
	logger    *zap.SugaredLogger
	stats     tally.Scope

	mu             sync.Mutex
	phase          entity.Phase
	advancing      bool
	stopping       bool
	latestRelease  installer.Release
	hasRelease     bool
	currentProject string
	pendingProject string
	hasPending     bool
}

// New creates the startup controller.
func New(p Params) (Controller, error) {
	c := &controller{
		installer: p.Installer,
		lsp:       p.LSP,
		bridge:    p.Bridge,
		monitor:   p.Monitor,
		proc:      p.EngineProc,
		transport: p.Transport,
		plots:     p.Plots,
		projwatch: p.ProjWatch,
		gateway:   p.Gateway,
		fs:        p.FS,
		clock:     p.Clock,
		logger:    p.Logger.With("controller", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
		phase:     entity.PhaseNotStarted,
	}

	if err := p.Config.Get(entity.EngineConfigKey).Populate(&c.cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", entity.EngineConfigKey, err)
	}

	// A change to the project marker file re-activates the environment so the
	// engine picks up dependency changes.
	p.ProjWatch.RegisterChangeHandler(c.onProjectMarkerChange)
	// An engine exit outside a controlled stop tears the session down.
	p.EngineProc.RegisterExitHandler(c.onEngineExit)

	return c, nil
}

func (c *controller) Phase() entity.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *controller) ContinueStartup(ctx context.Context) error {
	c.mu.Lock()
	if c.phase.Terminal() {
		c.mu.Unlock()
		return nil
	}
	if c.advancing {
		c.mu.Unlock()
		c.logger.Infow("startup already advancing")
		return nil
	}
	c.advancing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.advancing = false
		c.mu.Unlock()
	}()
	return c.advance(ctx)
}

// advance walks the machine forward until a terminal phase or a parked wait.
func (c *controller) advance(ctx context.Context) error {
	for {
		switch c.Phase() {
		case entity.PhaseNotStarted:
			c.setPhase(ctx, entity.PhaseCheckingForUpdates)

		case entity.PhaseCheckingForUpdates:
			release, ok, err := c.installer.LatestRelease(ctx)
			if err != nil {
				c.logger.Warnw("reading release manifest", "error", err)
			}
			c.mu.Lock()
			c.latestRelease, c.hasRelease = release, ok
			c.mu.Unlock()
			if ok {
				c.logger.Infow("latest engine release", "version", release.Version)
			}
			c.setPhase(ctx, entity.PhaseCheckingEngine)

		case entity.PhaseCheckingEngine:
			ready, err := c.installer.EngineReady(ctx)
			if err != nil {
				return c.fail(ctx, entity.PhaseCheckingEngine, err)
			}
			if ready {
				c.setPhase(ctx, entity.PhaseStartingProcess)
				continue
			}
			c.mu.Lock()
			release, hasRelease := c.latestRelease, c.hasRelease
			c.mu.Unlock()
			if !hasRelease {
				return c.fail(ctx, entity.PhaseCheckingEngine,
					fmt.Errorf("engine binary missing and no release available to install"))
			}
			c.setPhase(ctx, entity.PhaseInstallingEngine)
			// Install runs in the background; its callback resumes the machine.
			if err := c.installer.Install(ctx, release, c.onInstallDone); err != nil {
				return c.fail(ctx, entity.PhaseInstallingEngine, err)
			}
			return nil

		case entity.PhaseInstallingEngine:
			ready, err := c.installer.EngineReady(ctx)
			if err != nil {
				return c.fail(ctx, entity.PhaseInstallingEngine, err)
			}
			if !ready {
				return c.fail(ctx, entity.PhaseInstallingEngine,
					fmt.Errorf("engine binary still missing after install"))
			}
			c.setPhase(ctx, entity.PhaseStartingProcess)

		case entity.PhaseStartingProcess:
			if err := c.startProcess(ctx); err != nil {
				return c.fail(ctx, entity.PhaseStartingProcess, err)
			}
			c.setPhase(ctx, entity.PhaseActivatingProject)

		case entity.PhaseActivatingProject:
			if err := c.activateInitialProject(ctx); err != nil {
				return c.fail(ctx, entity.PhaseActivatingProject, err)
			}
			c.setPhase(ctx, entity.PhaseStartingLanguageServer)

		case entity.PhaseStartingLanguageServer:
			if err := c.lsp.Start(ctx); err != nil {
				return c.fail(ctx, entity.PhaseStartingLanguageServer, err)
			}
			c.setPhase(ctx, entity.PhaseWaitingForLanguageServerReady)

		case entity.PhaseWaitingForLanguageServerReady:
			if c.cfg.LanguageServer.BinaryPath != "" && !c.lsp.Running() {
				return c.fail(ctx, entity.PhaseWaitingForLanguageServerReady,
					fmt.Errorf("language server exited during startup"))
			}
			c.setPhase(ctx, entity.PhaseCompleted)

		case entity.PhaseCompleted:
			c.applyPendingProject(ctx)
			return nil

		case entity.PhaseFailed:
			return nil
		}
	}
}

// onInstallDone resumes the state machine once the background install ends.
func (c *controller) onInstallDone(err error) {
	ctx := context.Background()
	if err != nil {
		c.fail(ctx, entity.PhaseInstallingEngine, err)
		return
	}
	if err := c.ContinueStartup(ctx); err != nil {
		c.logger.Errorw("resuming startup after install", "error", err)
	}
}

// startProcess spawns the engine and waits for the marker-driven transport
// handshake to finish before wiring the reader loop.
func (c *controller) startProcess(ctx context.Context) error {
	c.monitor.Reset()

	spec := engineproc.Spec{
		Path: c.cfg.BinaryPath,
		Args: c.cfg.Args,
		Dir:  c.cfg.ChannelDir,
	}
	if err := c.proc.Start(ctx, spec); err != nil {
		return err
	}

	if err := c.awaitSignal(ctx, c.monitor.TransportReady(), _transportTimeout); err != nil {
		return fmt.Errorf("waiting for transport handshake: %w", err)
	}
	c.bridge.StartReader(context.Background())
	return nil
}

// activateInitialProject activates the requested or default project. Paths
// without a project marker file are skipped without failing startup.
func (c *controller) activateInitialProject(ctx context.Context) error {
	c.mu.Lock()
	path := c.pendingProject
	hasPending := c.hasPending
	c.hasPending = false
	c.mu.Unlock()
	if !hasPending {
		path = c.cfg.DefaultProjectPath
	}

	if path == "" || !c.projectActivatable(path) {
		return nil
	}
	return c.activateProject(ctx, path)
}

// activateProject runs one suppressed activation round trip and records the
// project as current on success.
func (c *controller) activateProject(ctx context.Context, path string) error {
	c.monitor.SetSuppressed(true)
	if err := c.bridge.ActivateProject(ctx, path); err != nil {
		c.monitor.SetSuppressed(false)
		return err
	}
	if err := c.awaitSignal(ctx, c.monitor.ActivationComplete(), _activationTimeout); err != nil {
		// The monitor's own fallback unmutes output; activation may still
		// land later, so this is logged rather than fatal.
		c.stats.Counter("activation_timeouts").Inc(1)
		c.logger.Warnw("project activation unconfirmed", "path", path, "error", err)
	}

	c.mu.Lock()
	c.currentProject = path
	c.mu.Unlock()

	if err := c.projwatch.Watch(path); err != nil {
		c.logger.Warnw("watching project marker", "path", path, "error", err)
	}
	return nil
}

func (c *controller) projectActivatable(path string) bool {
	if c.cfg.ProjectMarkerFile == "" {
		return true
	}
	exists, err := c.fs.FileExists(filepath.Join(path, c.cfg.ProjectMarkerFile))
	if err != nil {
		c.logger.Warnw("checking project marker", "path", path, "error", err)
		return false
	}
	return exists
}

func (c *controller) ChangeProject(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.phase != entity.PhaseCompleted {
		c.pendingProject = path
		c.hasPending = true
		phase := c.phase
		c.mu.Unlock()
		c.logger.Infow("recording project switch until startup completes",
			"path", path, "phase", phase.String())
		return nil
	}
	c.mu.Unlock()
	return c.switchProject(ctx, path)
}

// switchProject deactivates the current environment and activates the new
// one, walking the machine back through the activation phases so the reported
// phase tracks the switch. A path without a marker file leaves the engine
// without an active project rather than failing.
func (c *controller) switchProject(ctx context.Context, path string) error {
	c.setPhase(ctx, entity.PhaseActivatingProject)

	c.monitor.SetSuppressed(true)
	if err := c.bridge.DeactivateProject(ctx); err != nil {
		c.logger.Warnw("deactivating project", "error", err)
	}
	if err := c.lsp.Stop(ctx); err != nil {
		c.logger.Warnw("stopping language server for project switch", "error", err)
	}

	c.mu.Lock()
	c.currentProject = ""
	c.mu.Unlock()

	if path != "" && c.projectActivatable(path) {
		c.monitor.Reset()
		if err := c.activateProject(ctx, path); err != nil {
			return c.fail(ctx, entity.PhaseActivatingProject, err)
		}
	} else {
		c.monitor.SetSuppressed(false)
	}

	c.setPhase(ctx, entity.PhaseStartingLanguageServer)
	if err := c.lsp.Start(ctx); err != nil {
		return c.fail(ctx, entity.PhaseStartingLanguageServer, err)
	}

	c.setPhase(ctx, entity.PhaseCompleted)
	c.applyPendingProject(ctx)
	return nil
}

// applyPendingProject applies a project switch recorded before completion.
func (c *controller) applyPendingProject(ctx context.Context) {
	c.mu.Lock()
	path, hasPending := c.pendingProject, c.hasPending
	c.hasPending = false
	c.mu.Unlock()

	if !hasPending {
		return
	}
	if err := c.switchProject(ctx, path); err != nil {
		c.logger.Errorw("applying recorded project switch", "path", path, "error", err)
	}
}

func (c *controller) RestartEngine(ctx context.Context) error {
	if err := c.gateway.Busy(ctx); err != nil {
		c.logger.Warnw("notifying busy", "error", err)
	}
	defer func() {
		if err := c.gateway.BusyDone(ctx); err != nil {
			c.logger.Warnw("notifying busy done", "error", err)
		}
	}()
	c.stats.Counter("engine_restarts").Inc(1)

	c.setPhase(ctx, entity.PhaseStartingProcess)
	if err := c.stopProcess(ctx); err != nil {
		c.logger.Warnw("stopping engine process", "error", err)
	}
	if err := c.transport.Disconnect(); err != nil {
		c.logger.Warnw("disconnecting transport", "error", err)
	}

	if err := c.startProcess(ctx); err != nil {
		return c.fail(ctx, entity.PhaseStartingProcess, err)
	}

	c.setPhase(ctx, entity.PhaseActivatingProject)
	c.mu.Lock()
	project := c.currentProject
	c.mu.Unlock()
	if project != "" {
		if err := c.activateProject(ctx, project); err != nil {
			return c.fail(ctx, entity.PhaseActivatingProject, err)
		}
	}

	c.setPhase(ctx, entity.PhaseCompleted)
	c.applyPendingProject(ctx)
	return nil
}

// stopProcess performs a controlled engine stop. The stopping flag keeps the
// exit handler from treating the resulting exit as a crash; the handler runs
// before Stop returns.
func (c *controller) stopProcess(ctx context.Context) error {
	c.mu.Lock()
	c.stopping = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.stopping = false
		c.mu.Unlock()
	}()
	return c.proc.Stop(ctx)
}

// onEngineExit handles an engine exit the controller did not drive: the
// transport is gone, so it is torn down, output suppression is lifted, and
// frontends learn the connection is lost.
func (c *controller) onEngineExit(err error) {
	c.mu.Lock()
	stopping := c.stopping
	c.mu.Unlock()
	if stopping {
		return
	}

	c.stats.Counter("unexpected_engine_exits").Inc(1)
	c.logger.Errorw("engine exited outside a controlled stop", "error", err)

	ctx := context.Background()
	if derr := c.transport.Disconnect(); derr != nil {
		c.logger.Warnw("disconnecting transport after engine exit", "error", derr)
	}
	c.monitor.SetSuppressed(false)
	c.setPhase(ctx, entity.PhaseFailed)
	if nerr := c.gateway.ConnectionLost(ctx); nerr != nil {
		c.logger.Warnw("notifying connection loss", "error", nerr)
	}
}

func (c *controller) Shutdown(ctx context.Context) error {
	var errs error

	if err := c.lsp.Stop(ctx); err != nil {
		c.logger.Warnw("stopping language server", "error", err)
		errs = multierr.Append(errs, err)
	}
	if err := c.stopProcess(ctx); err != nil {
		c.logger.Warnw("stopping engine process", "error", err)
		errs = multierr.Append(errs, err)
	}
	c.plots.Clear(ctx)
	if err := c.projwatch.Stop(); err != nil {
		c.logger.Warnw("stopping project watcher", "error", err)
		errs = multierr.Append(errs, err)
	}
	if err := c.transport.Disconnect(); err != nil {
		c.logger.Warnw("disconnecting transport", "error", err)
		errs = multierr.Append(errs, err)
	}

	return errs
}

// onProjectMarkerChange re-activates the current environment when its marker
// file changes on disk.
func (c *controller) onProjectMarkerChange(projectPath string) {
	c.mu.Lock()
	current := c.currentProject
	c.mu.Unlock()
	if current == "" {
		return
	}

	c.logger.Infow("project marker changed, re-activating", "path", projectPath)
	if err := c.bridge.ActivateProject(context.Background(), current); err != nil {
		c.logger.Warnw("re-activating project", "path", current, "error", err)
	}
}

// awaitSignal waits for ch, a deadline measured on the injected clock, or
// context cancellation, whichever comes first.
func (c *controller) awaitSignal(ctx context.Context, ch <-chan struct{}, timeout time.Duration) error {
	expired := make(chan struct{})
	timer := c.clock.AfterFunc(timeout, func() { close(expired) })
	defer timer.Stop()

	select {
	case <-ch:
		return nil
	case <-expired:
		return fmt.Errorf("timed out after %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setPhase transitions the machine and reports progress to frontends.
func (c *controller) setPhase(ctx context.Context, phase entity.Phase) {
	c.mu.Lock()
	from := c.phase
	c.phase = phase
	c.mu.Unlock()

	c.logger.Infow("startup phase transition", "from", from.String(), "to", phase.String())
	c.stats.Counter("phase_transitions").Inc(1)
	if err := c.gateway.StartupProgress(ctx, phase); err != nil {
		c.logger.Warnw("notifying startup progress", "error", err)
	}
}

// fail moves the machine to the failed phase and reports the failing step.
func (c *controller) fail(ctx context.Context, phase entity.Phase, err error) error {
	c.mu.Lock()
	c.phase = entity.PhaseFailed
	c.mu.Unlock()

	c.stats.Counter("startup_failures").Inc(1)
	c.logger.Errorw("startup failed", "phase", phase.String(), "error", err)
	if notifyErr := c.gateway.StartupError(ctx, phase, err.Error()); notifyErr != nil {
		c.logger.Warnw("notifying startup error", "error", notifyErr)
	}
	return err
}
