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

// DefaultUserAgent mimics a mobile browser; several of the scraped pages
// serve the lighter markup variant the extraction strategies expect.
const DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

type rawCfg struct {
	// Application configuration
	SourcesFile  string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"File containing the source configuration"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://updates.example.com)"`
	Concurrency  int    `long:"concurrency" env:"CONCURRENCY" default:"8" description:"Maximum number of sources fetched in parallel"`
	SnapshotTTL  int    `long:"snapshot-ttl" env:"SNAPSHOT_TTL" default:"300" description:"Snapshot cache TTL in seconds (0 disables caching)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/Kyiv" description:"Reference timezone for localized timestamps (e.g., Europe/Kyiv, UTC)"`
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
		SourcesFile:  raw.SourcesFile,
		Port:         raw.Port,
		BaseUrl:      raw.BaseUrl,
		Concurrency:  raw.Concurrency,
		SnapshotTTL:  raw.SnapshotTTL,
		APIAccessKey: raw.APIAccessKey,
		UserAgent:    cmp.Or(raw.UserAgent, DefaultUserAgent),
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
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
