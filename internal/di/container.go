// Package di provides dependency injection configuration for the ReelRead server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reelread/reelread-server/internal/config"
	"github.com/reelread/reelread-server/internal/di/providers"
	"github.com/reelread/reelread-server/internal/logger"
	"github.com/reelread/reelread-server/internal/recommend"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Genre bridge storage
	do.Provide(injector, providers.ProvideBridge)

	// Catalog clients
	do.Provide(injector, providers.ProvideTMDBClient)
	do.Provide(injector, providers.ProvideBigBookClient)

	// Recommendation engine
	do.Provide(injector, providers.ProvideRecommender)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of the full graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.BridgeHandle](injector)
	_ = do.MustInvoke[*providers.TMDBClientHandle](injector)
	_ = do.MustInvoke[*providers.BigBookClientHandle](injector)
	_ = do.MustInvoke[*recommend.Recommender](injector)

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
