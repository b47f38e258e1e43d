package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/extlink/internal/configstore"
	"github.com/MrSnakeDoc/extlink/internal/history"
	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/metrics"
	"github.com/MrSnakeDoc/extlink/internal/resolver"
	"github.com/MrSnakeDoc/extlink/internal/settings"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	StoreKind    string   // kv backend in use (memory, file, sqlite, redis)
	AllowedHosts []string // Host headers allowed to access the API
	AllowedCIDRS []string // IPs allowed to access the API and probes
	TrustProxy   bool     // true if running behind a trusted reverse proxy
	CORSOrigins  []string // browser origins allowed to call the API

	Store    *configstore.Store
	Resolver *resolver.Resolver
	History  *history.Log
	Settings *settings.Manager
	Metrics  *metrics.Recorder

	// Ping checks the kv backend; nil when the backend has nothing to ping.
	Ping func(ctx context.Context) error
	// ReloadTrigger requests a seed re-import; nil when no seed file is configured.
	ReloadTrigger chan struct{}
}
