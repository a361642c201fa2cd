//go:build wireinject
// +build wireinject

package main

import (
	"pms/config"
	"pms/internal/clock"
	"pms/internal/command"
	"pms/internal/cron"
	"pms/internal/database"
	"pms/internal/handler"
	"pms/internal/middleware"
	"pms/internal/realtime"
	"pms/internal/router"
	"pms/internal/service"
	"pms/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			clock.ProviderSet,
			realtime.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			clock.ProviderSet,
			realtime.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			command.ProviderSet,
		),
	)
}
