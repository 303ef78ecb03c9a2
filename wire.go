//go:build wireinject

package main

import (
	"context"

	"sfmc2graph/ioc"
	"sfmc2graph/pkg/server"
	"github.com/google/wire"
)

func InitApp(ctx context.Context) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitSFMCClient,
		ioc.InitAppService,
		ioc.InitGraphHandler,
		ioc.InitGinEngine,
		ioc.InitScheduler,
		server.NewHTTPServer,
	))
}
