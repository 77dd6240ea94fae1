package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Cache configuration
	RedisAddr string

	// Source adapter credentials
	GoogleAPIKey   string
	GoogleEngineID string

	// Reasoning service configuration
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Pipeline configuration
	SourcesFile       string
	FetchWorkerCount  int
	EnrichWorkerCount int
	SourceTimeout     int
	MaxRetries        int

	// Application configuration
	Port string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
