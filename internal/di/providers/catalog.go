package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelread/reelread-server/internal/catalog/bigbook"
	"github.com/reelread/reelread-server/internal/catalog/tmdb"
	"github.com/reelread/reelread-server/internal/config"
	"github.com/reelread/reelread-server/internal/logger"
)

// TMDBClientHandle wraps the movie catalog client with shutdown capability.
type TMDBClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *TMDBClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideTMDBClient provides the movie catalog client.
func ProvideTMDBClient(i do.Injector) (*TMDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := tmdb.NewClient(cfg.Catalog.TMDBAPIKey, log.Logger)
	log.Info("TMDb client initialized")

	return &TMDBClientHandle{Client: client}, nil
}

// BigBookClientHandle wraps the book catalog client with shutdown capability.
type BigBookClientHandle struct {
	*bigbook.Client
}

// Shutdown implements do.Shutdownable.
func (h *BigBookClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideBigBookClient provides the book catalog client.
func ProvideBigBookClient(i do.Injector) (*BigBookClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := bigbook.NewClient(cfg.Catalog.BigBookAPIKey, log.Logger)
	log.Info("Big Book client initialized")

	return &BigBookClientHandle{Client: client}, nil
}
