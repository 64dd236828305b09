//go:build wireinject
// +build wireinject

package main

import (
	"github.com/amaumene/moviemate/internal/api"
	"github.com/amaumene/moviemate/internal/config"
	"github.com/amaumene/moviemate/internal/controllers"
	"github.com/amaumene/moviemate/internal/models"
	"github.com/amaumene/moviemate/internal/utils"
	"github.com/google/wire"
	"github.com/rs/zerolog"
)

func initializeApplication(cfg *config.Config, logger zerolog.Logger) (*application, func(), error) {
	wire.Build(
		models.OpenRepository,
		utils.NewTracerProvider,
		utils.NewTracer,
		controllers.NewItemController,
		api.NewServer,
		newApplication,
	)
	return nil, nil, nil
}
