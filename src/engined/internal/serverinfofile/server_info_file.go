// Package serverinfofile publishes the daemon's connection details to a single
// JSON file that the IDE extension polls to discover a running instance.
package serverinfofile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/replkit/engined/src/engined/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyInfoFile = "serverInfoFilePath"

// Well-known info file fields.
const (
	KeyRPCAddress      = "rpcAddress"
	KeyPlotAddress     = "plotAddress"
	KeyDetailedLogPath = "detailedLogPath"
	KeyPID             = "pid"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerInfoFile manages contents of the server info file. Each update
// rewrites the whole file, so readers always see a complete JSON document.
type ServerInfoFile interface {
	UpdateField(key string, value string) error
	Path() string
}

type infoFile struct {
	path     string
	logger   *zap.SugaredLogger
	fs       fs.EngineFS
	contents map[string]string
	mu       sync.Mutex
}

// Params define values to be used by ServerInfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	FS        fs.EngineFS
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a ServerInfoFile and records this process's pid in it.
func New(p Params) (ServerInfoFile, error) {
	f := &infoFile{
		logger:   p.Logger,
		fs:       p.FS,
		contents: make(map[string]string),
	}

	if err := p.Config.Get(_configKeyInfoFile).Populate(&f.path); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyInfoFile, err)
	}
	if f.path == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyInfoFile)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return f.UpdateField(KeyPID, strconv.Itoa(os.Getpid()))
		},
		OnStop: f.onStop,
	})

	return f, nil
}

// onStop removes the info file so a stale copy never advertises a dead daemon.
func (f *infoFile) onStop(ctx context.Context) error {
	if f.path == "" {
		return nil
	}
	return f.fs.Remove(f.path)
}

func (f *infoFile) UpdateField(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.contents[key] = value
	jsonOutput, err := json.Marshal(f.contents)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	if err := f.fs.WriteFile(f.path, string(jsonOutput)); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}
	f.logger.Infow("server info saved", "file", f.path, key, value)
	return nil
}

func (f *infoFile) Path() string {
	return f.path
}
