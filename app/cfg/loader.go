package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	SourcesDir      string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing news source configuration files"`
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath          string `long:"db-path" env:"DB_PATH" default:"./marketnews.db" description:"Path to the SQLite database file"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for task processing"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Background news refresh interval in seconds"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for source management endpoints (optional)"`

	// Aggregation defaults
	MaxArticlesPerFeed int `long:"max-articles-per-feed" env:"MAX_ARTICLES_PER_FEED" default:"10" description:"Maximum items taken from a single feed"`
	MaxTotalArticles   int `long:"max-total-articles" env:"MAX_TOTAL_ARTICLES" default:"150" description:"Maximum articles returned by one aggregation run"`
	MaxAgeHours        int `long:"max-age-hours" env:"MAX_AGE_HOURS" default:"48" description:"Articles older than this are dropped"`
	FetchBatchSize     int `long:"fetch-batch-size" env:"FETCH_BATCH_SIZE" default:"3" description:"Number of feeds fetched concurrently"`
	FetchTimeout       int `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"20" description:"Per-attempt feed fetch timeout in seconds"`

	// Result cache windows
	CacheFreshWindow int `long:"cache-fresh-window" env:"CACHE_FRESH_WINDOW" default:"300" description:"Seconds a cached result is considered fresh"`
	CacheStaleWindow int `long:"cache-stale-window" env:"CACHE_STALE_WINDOW" default:"600" description:"Seconds a cached result remains servable as stale"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; MarketNews/1.0)" description:"User agent string for feed requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
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
		SourcesDir:         raw.SourcesDir,
		Port:               raw.Port,
		DBPath:             raw.DBPath,
		WorkerCount:        raw.WorkerCount,
		RefreshInterval:    raw.RefreshInterval,
		APIAccessKey:       raw.APIAccessKey,
		MaxArticlesPerFeed: raw.MaxArticlesPerFeed,
		MaxTotalArticles:   raw.MaxTotalArticles,
		MaxAgeHours:        raw.MaxAgeHours,
		FetchBatchSize:     raw.FetchBatchSize,
		FetchTimeout:       raw.FetchTimeout,
		CacheFreshWindow:   raw.CacheFreshWindow,
		CacheStaleWindow:   raw.CacheStaleWindow,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

// SetForTest replaces the global configuration. Test helper only.
func SetForTest(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
