package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default source registry: the general-news feed set plus GDELT defaults.
// A sports-biased or otherwise specialized registry is just a different
// YAML file pointed at via SOURCES_FILE, never a second built-in list.
var defaultFeeds = []string{
	// Major broadcast networks
	"https://feeds.nbcnews.com/nbcnews/public/news",
	"https://www.cbsnews.com/latest/rss/main",
	"https://abcnews.go.com/abcnews/usheadlines",

	// Major newspapers
	"https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
	"https://feeds.washingtonpost.com/rss/national",

	// News magazines and digital outlets
	"https://www.economist.com/united-states/rss.xml",
	"https://feeds.bloomberg.com/politics/news.rss",
	"https://feeds.npr.org/1001/rss.xml",
	"https://www.vox.com/rss/index.xml",
}

var defaultGDELT = GDELTConfig{
	AllowedSuffixes: []string{".com", ".org", ".edu"},
	SourceLocation:  "USA",
	MaxRecords:      50,
}

// Loader handles loading and validation of the source registry file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the registry file. A missing file is not an error: the
// built-in defaults are returned so the pipeline always has sources.
func (l *Loader) Load() (*SourcesConfig, error) {
	cfg := &SourcesConfig{
		Feeds: defaultFeeds,
		GDELT: defaultGDELT,
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var loaded SourcesConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(loaded.Feeds) > 0 {
		cfg.Feeds = loaded.Feeds
	}
	if len(loaded.GDELT.AllowedSuffixes) > 0 {
		cfg.GDELT.AllowedSuffixes = loaded.GDELT.AllowedSuffixes
	}
	if loaded.GDELT.SourceLocation != "" {
		cfg.GDELT.SourceLocation = loaded.GDELT.SourceLocation
	}
	if loaded.GDELT.MaxRecords > 0 {
		cfg.GDELT.MaxRecords = loaded.GDELT.MaxRecords
	}

	if err := l.validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", l.path, err)
	}

	return cfg, nil
}

func (l *Loader) validate(cfg *SourcesConfig) error {
	for _, feed := range cfg.Feeds {
		if feed == "" {
			return fmt.Errorf("feed URL cannot be empty")
		}
	}
	if cfg.GDELT.MaxRecords < 0 {
		return fmt.Errorf("gdelt max_records cannot be negative")
	}
	return nil
}
