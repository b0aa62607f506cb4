package controller

import (
	"github.com/replkit/engined/src/engined/controller/bridge"
	enginedaemon "github.com/replkit/engined/src/engined/controller/engined-daemon"
	"github.com/replkit/engined/src/engined/controller/installer"
	"github.com/replkit/engined/src/engined/controller/lsp"
	"github.com/replkit/engined/src/engined/controller/monitor"
	"github.com/replkit/engined/src/engined/controller/plots"
	"github.com/replkit/engined/src/engined/controller/startup"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(enginedaemon.New),
	fx.Provide(startup.New),
	fx.Provide(bridge.New),
	fx.Provide(monitor.New),
	fx.Provide(installer.New),
	fx.Provide(lsp.New),
	fx.Provide(plots.New),
)
