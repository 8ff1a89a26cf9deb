//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/natal-chart/internal/bootstrap"
	"github.com/yanqian/natal-chart/internal/domain/auth"
	"github.com/yanqian/natal-chart/internal/domain/chart"
	"github.com/yanqian/natal-chart/internal/infra/config"
	httpiface "github.com/yanqian/natal-chart/internal/interface/http"
	"github.com/yanqian/natal-chart/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChartConfig,
		provideEphemeris,
		provideAyanamsa,
		provideAuthConfig,
		provideChartCache,
		provideChartRepository,
		provideChartArchive,
		chart.NewAssembler,
		chart.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
