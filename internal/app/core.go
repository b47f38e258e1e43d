package app

import (
	"github.com/MrSnakeDoc/extlink/internal/configstore"
	"github.com/MrSnakeDoc/extlink/internal/history"
	"github.com/MrSnakeDoc/extlink/internal/kv"
	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/metrics"
	"github.com/MrSnakeDoc/extlink/internal/resolver"
	"github.com/MrSnakeDoc/extlink/internal/settings"
)

// Core groups the engine components over one kv store.
type Core struct {
	Store    *configstore.Store
	Resolver *resolver.Resolver
	History  *history.Log
	Settings *settings.Manager
}

// NewCore wires the engine. rec may be nil, in which case nothing is counted.
func NewCore(backend kv.Store, log logger.Logger, rec *metrics.Recorder) *Core {
	store := configstore.New(backend, log)

	var (
		convObs resolver.Observer
		recObs  history.Observer
	)
	if rec != nil {
		convObs, recObs = rec, rec
	}

	return &Core{
		Store:    store,
		Resolver: resolver.New(store, convObs),
		History:  history.New(store, log, recObs),
		Settings: settings.New(store, log),
	}
}
