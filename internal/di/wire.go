//go:build wireinject
// +build wireinject

package di

import (
	"FinBridge/pkg/config"
	"FinBridge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideBankProviders,
		ProvideEventPublisher,
		ProvideLocker,

		// Use cases
		ProvideTransferRouter,
		ProvideBankingAggregator,
		ProvideCryptoAggregator,
		ProvideStatusReporter,

		// HTTP
		ProvideTransferLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
