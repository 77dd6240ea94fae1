package config

// SourcesConfig describes the source registry: the feed endpoints polled by
// the feed adapter and the tuning knobs of the API-backed adapters.
type SourcesConfig struct {
	Feeds []string    `yaml:"feeds"`
	GDELT GDELTConfig `yaml:"gdelt"`
}

type GDELTConfig struct {
	// AllowedSuffixes restricts results to sources whose domain ends with
	// one of these suffixes, a crude relevance/geography filter.
	AllowedSuffixes []string `yaml:"allowed_suffixes"`
	// SourceLocation is appended to the query as a sourceloc qualifier.
	SourceLocation string `yaml:"source_location"`
	// MaxRecords caps the number of results per request.
	MaxRecords int `yaml:"max_records"`
}
