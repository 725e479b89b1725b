package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version == "" {
		return "unknown"
	}
	return Version
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" description:"Database host (empty disables the persistent store)"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"news_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" description:"Database password"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"news" description:"Database name"`

	// Cache configuration
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address (empty uses the in-memory cache)"`

	// Aggregation configuration
	SourcesFile        string   `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing feed sources"`
	SelfFeedURL        string   `long:"self-feed-url" env:"SELF_FEED_URL" description:"URL of the operator's own curated feed"`
	RecencyWindowHours int      `long:"recency-window" env:"RECENCY_WINDOW_HOURS" default:"72" description:"Sliding recency window in hours; older items are dropped"`
	CacheTTL           int      `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Published collection TTL in seconds"`
	CycleInterval      int      `long:"cycle-interval" env:"CYCLE_INTERVAL" default:"10" description:"Aggregation cycle interval in minutes"`
	WorkerCount        int      `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent source fetches per cycle"`
	FetchTimeout       int      `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-source fetch timeout in seconds"`
	PlaceholderImage   string   `long:"placeholder-image" env:"PLACEHOLDER_IMAGE" default:"/static/placeholder.png" description:"Image URL used when an item has no resolvable image"`
	ExcludedCategories []string `long:"excluded-category" env:"EXCLUDED_CATEGORIES" env-delim:"," default:"affiliation" description:"Item categories excluded from the output (case-insensitive)"`

	// Application configuration
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"infinitoaocubo-news/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		RedisAddr:          raw.RedisAddr,
		SourcesFile:        raw.SourcesFile,
		SelfFeedURL:        raw.SelfFeedURL,
		RecencyWindowHours: raw.RecencyWindowHours,
		CacheTTL:           raw.CacheTTL,
		CycleInterval:      raw.CycleInterval,
		WorkerCount:        raw.WorkerCount,
		FetchTimeout:       raw.FetchTimeout,
		PlaceholderImage:   raw.PlaceholderImage,
		ExcludedCategories: raw.ExcludedCategories,
		Port:               raw.Port,
		UserAgent:          raw.UserAgent,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
