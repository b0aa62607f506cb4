package app

import (
	"context"
	"time"

	"github.com/replkit/engined/src/engined/gateway"
	notifier "github.com/replkit/engined/src/engined/gateway/ide-client"
	"github.com/replkit/engined/src/engined/handler"
	"github.com/replkit/engined/src/engined/internal/cellbuf"
	"github.com/replkit/engined/src/engined/internal/clock"
	"github.com/replkit/engined/src/engined/internal/core"
	"github.com/replkit/engined/src/engined/internal/engineproc"
	"github.com/replkit/engined/src/engined/internal/executor"
	"github.com/replkit/engined/src/engined/internal/fs"
	"github.com/replkit/engined/src/engined/internal/jsonrpcfx"
	"github.com/replkit/engined/src/engined/internal/logfilewriter"
	"github.com/replkit/engined/src/engined/internal/projwatch"
	"github.com/replkit/engined/src/engined/internal/serverinfofile"
	"github.com/replkit/engined/src/engined/internal/transport"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the engined application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	clock.Module,
	serverinfofile.Module,
	logfilewriter.Module,
	transport.Module,
	engineproc.Module,
	cellbuf.Module,
	projwatch.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "engined",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
