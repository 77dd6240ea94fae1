package sources

import (
	"net/http"
	"time"

	"github.com/newsjungle/newsjungle/app/cfg"
	"github.com/newsjungle/newsjungle/app/config"
)

// NewRegistry builds the canonical adapter set: the feed adapter over the
// configured endpoints, GDELT, and Google Custom Search. All adapters share
// one HTTP client; rate-limiter state stays adapter-local.
func NewRegistry(appCfg *cfg.Cfg, srcCfg *config.SourcesConfig) []Source {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
	}

	extractor := NewExtractor(client, appCfg.UserAgent)

	return []Source{
		NewFeedSource(srcCfg.Feeds, client, extractor, appCfg.UserAgent),
		NewGDELTSource(client, appCfg.UserAgent, srcCfg.GDELT),
		NewGoogleSource(appCfg.GoogleAPIKey, appCfg.GoogleEngineID, client, extractor),
	}
}
