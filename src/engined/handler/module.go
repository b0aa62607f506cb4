package handler

import (
	controller "github.com/replkit/engined/src/engined/controller"
	enginedaemon "github.com/replkit/engined/src/engined/controller/engined-daemon"
	handler "github.com/replkit/engined/src/engined/handler/engined-daemon"
	"github.com/replkit/engined/src/engined/repository/session"
	"go.uber.org/fx"
)

// Module provides the engined server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m enginedaemon.Controller) {}),
)
