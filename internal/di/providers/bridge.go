package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelread/reelread-server/internal/bridge"
	"github.com/reelread/reelread-server/internal/config"
	"github.com/reelread/reelread-server/internal/logger"
)

// BridgeHandle wraps the genre bridge store with shutdown capability.
type BridgeHandle struct {
	*bridge.Store
}

// Shutdown implements do.Shutdownable.
func (h *BridgeHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideBridge provides the genre bridge store.
func ProvideBridge(i do.Injector) (*BridgeHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := bridge.Open(cfg.Bridge.DBPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Genre bridge opened", "path", cfg.Bridge.DBPath)

	return &BridgeHandle{Store: store}, nil
}
