package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelread/reelread-server/internal/config"
	"github.com/reelread/reelread-server/internal/logger"
	"github.com/reelread/reelread-server/internal/recommend"
)

// ProvideRecommender provides the recommendation engine.
func ProvideRecommender(i do.Injector) (*recommend.Recommender, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	movies := do.MustInvoke[*TMDBClientHandle](i)
	books := do.MustInvoke[*BigBookClientHandle](i)
	bridgeHandle := do.MustInvoke[*BridgeHandle](i)

	return recommend.New(movies.Client, books.Client, bridgeHandle.Store, cfg.Recommend.DefaultLimit, log.Logger), nil
}
