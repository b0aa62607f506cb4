// Package installer verifies that the engine binary is present and installs
// or upgrades it from the release manifest. Installation runs asynchronously;
// callers register a completion callback and resume startup from it.
package installer

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/internal/executor"
	"github.com/replkit/engined/src/engined/internal/fs"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const _nameKey = "installer"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Release is one installable engine version from the manifest.
type Release struct {
	Version string   `yaml:"version"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

type manifest struct {
	Releases []Release `yaml:"releases"`
}

// Controller checks and installs the engine binary.
type Controller interface {
	// EngineReady reports whether the configured engine binary exists.
	EngineReady(ctx context.Context) (bool, error)
	// LatestRelease reads the release manifest and returns its newest entry.
	// Returns false when no manifest is configured.
	LatestRelease(ctx context.Context) (Release, bool, error)
	// Install runs the release's install command in the background and calls
	// done exactly once with the result. Only one install runs at a time.
	Install(ctx context.Context, release Release, done func(err error)) error
}

// Params are inbound parameters to construct the installer.
type Params struct {
	fx.In

	Config   config.Provider
	Executor executor.Executor
	FS       fs.EngineFS
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type controller struct {
	cfg      entity.EngineConfig
	executor executor.Executor
	fs       fs.EngineFS
	logger   *zap.SugaredLogger
	stats    tally.Scope

	mu         sync.Mutex
	installing bool
}

// New creates a new installer controller.
func New(p Params) (Controller, error) {
	cfg := entity.EngineConfig{}
	if err := p.Config.Get(entity.EngineConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", entity.EngineConfigKey, err)
	}

	return &controller{
		cfg:      cfg,
		executor: p.Executor,
		fs:       p.FS,
		logger:   p.Logger.With("controller", _nameKey),
		stats:    p.Stats.SubScope(_nameKey),
	}, nil
}

func (c *controller) EngineReady(ctx context.Context) (bool, error) {
	if c.cfg.BinaryPath == "" {
		return false, fmt.Errorf("engine binary path not configured")
	}
	return c.fs.FileExists(c.cfg.BinaryPath)
}

func (c *controller) LatestRelease(ctx context.Context) (Release, bool, error) {
	if c.cfg.ReleaseManifestPath == "" {
		return Release{}, false, nil
	}

	data, err := c.fs.ReadFile(c.cfg.ReleaseManifestPath)
	if err != nil {
		return Release{}, false, fmt.Errorf("reading release manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Release{}, false, fmt.Errorf("parsing release manifest: %w", err)
	}
	if len(m.Releases) == 0 {
		return Release{}, false, nil
	}

	// Manifest entries are ordered oldest to newest.
	return m.Releases[len(m.Releases)-1], true, nil
}

func (c *controller) Install(ctx context.Context, release Release, done func(err error)) error {
	if release.Command == "" {
		return fmt.Errorf("release %q has no install command", release.Version)
	}

	c.mu.Lock()
	if c.installing {
		c.mu.Unlock()
		return fmt.Errorf("install already in progress")
	}
	c.installing = true
	c.mu.Unlock()

	c.stats.Counter("installs").Inc(1)
	c.logger.Infow("installing engine", "version", release.Version)

	go func() {
		cmd := exec.Command(release.Command, release.Args...)
		err := c.executor.RunCommand(cmd, nil)

		c.mu.Lock()
		c.installing = false
		c.mu.Unlock()

		if err != nil {
			c.stats.Counter("install_failures").Inc(1)
			c.logger.Errorw("engine install failed", "version", release.Version, "error", err)
		} else {
			c.logger.Infow("engine install finished", "version", release.Version)
		}
		done(err)
	}()

	return nil
}
