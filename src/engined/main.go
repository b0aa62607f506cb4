package main

import (
	"github.com/replkit/engined/src/engined/app"
	"go.uber.org/fx"
)

const _version = "(to be added at build time)"

func opts() fx.Option {
	return fx.Options(
		app.Module,
	)
}

func main() {
	fx.New(opts()).Run()
}
