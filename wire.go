//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"tierbench/ioc"
	"tierbench/pkg/server"
)

func InitApp(ctx context.Context, path ioc.ConfigPath) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitRelationalStore,
		ioc.InitDocumentStore,
		ioc.InitGraphClient,
		ioc.InitGraphQueries,
		ioc.InitAppService,
		ioc.InitBenchRunner,
		ioc.InitScheduler,
		ioc.InitHeartbeat,
		ioc.InitSeedHandler,
		ioc.InitRelationalHandler,
		ioc.InitDocumentHandler,
		ioc.InitGraphHandler,
		ioc.InitBenchHandler,
		ioc.InitGinEngine,
		server.NewHTTPServer,
	))
}
