// Package lsp manages the external language server that accompanies the
// engine. The daemon only supervises the process; the IDE talks to the
// language server directly.
package lsp

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/replkit/engined/src/engined/entity"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "lsp"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller starts and stops the external language server process.
type Controller interface {
	// Start launches the language server. No-op when it is already running or
	// when no binary is configured.
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	Running() bool
}

// Params are inbound parameters to construct the controller.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	cfg    entity.LanguageServerConfig
	logger *zap.SugaredLogger
	stats  tally.Scope

	mu  sync.Mutex
	cmd *exec.Cmd
}

// New creates a new language server controller.
func New(p Params) (Controller, error) {
	cfg := entity.EngineConfig{}
	if err := p.Config.Get(entity.EngineConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", entity.EngineConfigKey, err)
	}

	c := &controller{
		cfg:    cfg.LanguageServer,
		logger: p.Logger.With("controller", _nameKey),
		stats:  p.Stats.SubScope(_nameKey),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: c.Stop,
	})

	return c, nil
}

func (c *controller) Start(ctx context.Context) error {
	if c.cfg.BinaryPath == "" {
		c.logger.Debugw("no language server configured")
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return nil
	}

	cmd := exec.Command(c.cfg.BinaryPath, c.cfg.Args...)
	if err := cmd.Start(); err != nil {
		c.stats.Counter("start_failures").Inc(1)
		return fmt.Errorf("starting language server %q: %w", c.cfg.BinaryPath, err)
	}
	c.stats.Counter("starts").Inc(1)
	c.logger.Infow("language server started", "pid", cmd.Process.Pid)
	c.cmd = cmd

	go c.reap(cmd)
	return nil
}

// reap collects the exit status so a crashed server can be started again.
func (c *controller) reap(cmd *exec.Cmd) {
	err := cmd.Wait()

	c.mu.Lock()
	if c.cmd == cmd {
		c.cmd = nil
	}
	c.mu.Unlock()

	if err != nil {
		c.stats.Counter("abnormal_exits").Inc(1)
		c.logger.Warnw("language server exited", "error", err)
	}
}

func (c *controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()

	if cmd == nil {
		return nil
	}

	c.logger.Infow("stopping language server", "pid", cmd.Process.Pid)
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stopping language server: %w", err)
	}
	return nil
}

func (c *controller) Restart(ctx context.Context) error {
	if err := c.Stop(ctx); err != nil {
		return err
	}
	return c.Start(ctx)
}

func (c *controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmd != nil
}
