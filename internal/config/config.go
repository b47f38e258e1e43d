package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with EXTLINK_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store     string // memory | file | sqlite | redis
	StorePath string // file or sqlite path (default depends on Store)
	SeedFile  string // optional YAML file of mappings imported at startup

	SeedReloadInterval time.Duration // periodic seed re-import, 0 = manual only

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisPrefix         string        // key namespace (default "extlink:")
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total startup retry budget
	RedisRetryInterval  time.Duration // first backoff step
	RedisMaxWait        time.Duration // backoff cap
	RedisPingTimeout    time.Duration // per-attempt ping timeout
	RedisWarnThreshold  int           // attempts logged as warn before error

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict API access to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
	CORSOrigins  []string // origins allowed to call the API from a browser ("*" = any)

	storePathSet bool // EXTLINK_STORE_PATH was given explicitly
}

// Load reads the configuration from the environment. A .env file in the
// working directory, if present, is loaded first without overriding
// variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	store := strings.ToLower(getenv("EXTLINK_STORE", StoreFile))

	cfg := &Config{
		ListenPort:      getenv("EXTLINK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("EXTLINK_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("EXTLINK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("EXTLINK_PRETTY_LOG", true),

		Store:     store,
		StorePath: getenv("EXTLINK_STORE_PATH", DefaultStorePath(store)),
		SeedFile:  getenv("EXTLINK_SEED_FILE", ""),

		SeedReloadInterval: mustDuration("EXTLINK_SEED_RELOAD_INTERVAL", 0),

		RedisAddr:           getenv("EXTLINK_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("EXTLINK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("EXTLINK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("EXTLINK_REDIS_DB", 0),
		RedisPrefix:         getenv("EXTLINK_REDIS_PREFIX", "extlink:"),
		RedisDT:             mustDuration("EXTLINK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("EXTLINK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("EXTLINK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("EXTLINK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("EXTLINK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("EXTLINK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("EXTLINK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("EXTLINK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("EXTLINK_REDIS_WARN_THRESHOLD", 3),

		AllowedHosts: splitAndTrim(getenv("EXTLINK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("EXTLINK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("EXTLINK_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("EXTLINK_CORS_ORIGINS", "*")),

		storePathSet: os.Getenv("EXTLINK_STORE_PATH") != "",
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate reports configuration errors that must stop startup.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	case StoreFile, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("EXTLINK_STORE_PATH is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("unknown EXTLINK_STORE %q (want memory, file, sqlite or redis)", c.Store)
	}
	if c.SeedReloadInterval < 0 {
		return fmt.Errorf("EXTLINK_SEED_RELOAD_INTERVAL must not be negative")
	}
	if c.Store == StoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("EXTLINK_REDIS_ADDR is required for the redis store")
	}
	return nil
}

// SetStore switches the backend kind. Unless a path was configured
// explicitly, StorePath follows the new kind's default.
func (c *Config) SetStore(kind string) {
	c.Store = strings.ToLower(strings.TrimSpace(kind))
	if !c.storePathSet {
		c.StorePath = DefaultStorePath(c.Store)
	}
}

// DefaultStorePath is the state location used when EXTLINK_STORE_PATH is unset.
func DefaultStorePath(store string) string {
	switch store {
	case StoreFile:
		return "extlink.yaml"
	case StoreSQLite:
		return "extlink.db"
	default:
		return ""
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
