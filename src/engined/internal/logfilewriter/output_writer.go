// Package logfilewriter backs the detailed diagnostic stream: raw engine
// output echoed line by line to a temp file the IDE can tail.
package logfilewriter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/replkit/engined/src/engined/internal/fs"
	"github.com/replkit/engined/src/engined/internal/serverinfofile"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _logsDirName = "engined-detailed"

// Module is the Fx module for this package.
var Module = fx.Provide(
	fx.Annotate(New, fx.ResultTags(`name:"detailedLog"`)),
)

// Params define the dependencies for the detailed log writer.
type Params struct {
	fx.In

	FS             fs.EngineFS
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

// New creates a writer for human readable engine diagnostics, kept in a
// temporary file independent of the daemon's own logging. The file path is
// published in the server info file so the IDE can tail it.
func New(p Params) (io.Writer, error) {
	logsDirPath := filepath.Join(os.TempDir(), _logsDirName)
	if err := p.FS.MkdirAll(logsDirPath); err != nil {
		return nil, err
	}

	logFile, err := p.FS.TempFile(logsDirPath, "")
	if err != nil {
		return nil, err
	}

	p.ServerInfoFile.UpdateField(serverinfofile.KeyDetailedLogPath, logFile.Name())

	// Write via a logger for timestamps and buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	fileLogger := zap.New(core).Sugar()

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			fileLogger.Sync()
			logFile.Close()
			return p.FS.Remove(logFile.Name())
		},
	})

	return &loggerWriter{logger: fileLogger}, nil
}

type loggerWriter struct {
	logger *zap.SugaredLogger
}

// Write implements io.Writer by logging each non-empty line individually.
func (o *loggerWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}

	return len(p), nil
}
