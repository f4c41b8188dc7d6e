//go:build wireinject
// +build wireinject

package di

import (
	"PricePulse/pkg/config"
	"PricePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideStatsCache,

		// Repositories
		ProvideHistoryStore,
		ProvideChurnStore,
		ProvideCustomerStore,
		ProvideHistoryPublisher,

		// External model clients and artifacts
		ProvideCategoryEncoder,
		ProvideRevenueScorer,
		ProvideChurnScorer,

		// Use cases
		ProvideHistoryStats,
		ProvideHistoryRecorder,
		ProvideOptimizer,
		ProvideChurnAssessor,
		ProvideCustomerClassifier,
		ProvideKafkaHistoryHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
