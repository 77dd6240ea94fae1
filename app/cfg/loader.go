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
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./newsjungle.db" description:"Path to the SQLite database file"`

	// Cache configuration
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for the fetch cache (optional, e.g. localhost:6379)"`

	// Source adapter credentials
	GoogleAPIKey   string `long:"google-api-key" env:"GOOGLE_SEARCH_API_KEY" description:"Google Custom Search API key (optional)"`
	GoogleEngineID string `long:"google-engine-id" env:"GOOGLE_SEARCH_ENGINE_ID" description:"Google Custom Search engine ID (optional)"`

	// Reasoning service configuration
	LLMBaseURL string `long:"llm-base-url" env:"LLM_BASE_URL" description:"Base URL of the OpenAI-compatible reasoning service (optional)"`
	LLMAPIKey  string `long:"llm-api-key" env:"LLM_API_KEY" description:"API key for the reasoning service (optional, enrichment disabled without it)"`
	LLMModel   string `long:"llm-model" env:"LLM_MODEL" default:"gpt-4o" description:"Model name for the reasoning service"`

	// Pipeline configuration
	SourcesFile       string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file describing the source registry"`
	FetchWorkerCount  int    `long:"fetch-workers" env:"FETCH_WORKER_COUNT" default:"3" description:"Number of concurrent source adapter calls"`
	EnrichWorkerCount int    `long:"enrich-workers" env:"ENRICH_WORKER_COUNT" default:"3" description:"Number of concurrent enrichment batch calls"`
	SourceTimeout     int    `long:"source-timeout" env:"SOURCE_TIMEOUT" default:"30" description:"Per-adapter timeout in seconds"`
	MaxRetries        int    `long:"max-retries" env:"MAX_RETRIES" default:"2" description:"Retry attempts per source adapter"`

	// Application configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36" description:"User agent string for HTTP requests"`
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
		DBPath:            raw.DBPath,
		RedisAddr:         raw.RedisAddr,
		GoogleAPIKey:      raw.GoogleAPIKey,
		GoogleEngineID:    raw.GoogleEngineID,
		LLMBaseURL:        raw.LLMBaseURL,
		LLMAPIKey:         raw.LLMAPIKey,
		LLMModel:          raw.LLMModel,
		SourcesFile:       raw.SourcesFile,
		FetchWorkerCount:  raw.FetchWorkerCount,
		EnrichWorkerCount: raw.EnrichWorkerCount,
		SourceTimeout:     raw.SourceTimeout,
		MaxRetries:        raw.MaxRetries,
		Port:              raw.Port,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
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
