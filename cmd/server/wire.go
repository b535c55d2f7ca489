//go:build wireinject

package main

import (
	"github.com/google/wire"

	"customgpt-actions/internal/config"
	domain "customgpt-actions/internal/domain/media"
	"customgpt-actions/internal/infrastructure/logger"
	"customgpt-actions/internal/infrastructure/replicate"
	"customgpt-actions/internal/interfaces/httpserver"
)

var mediaSet = wire.NewSet(
	replicate.NewClient,
	wire.Bind(new(domain.Provider), new(*replicate.Client)),
	domain.NewService,
)

// BuildApplication assembles the service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		mediaSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
