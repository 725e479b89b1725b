package cfg

type Cfg struct {
	// Database configuration (optional; empty host runs without a store)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Cache configuration (optional; empty address falls back to in-memory)
	RedisAddr string

	// Aggregation configuration
	SourcesFile        string
	SelfFeedURL        string
	RecencyWindowHours int
	CacheTTL           int
	CycleInterval      int
	WorkerCount        int
	FetchTimeout       int
	PlaceholderImage   string
	ExcludedCategories []string

	// Application configuration
	Port      string
	UserAgent string
	Debug     bool
	Version   string
}
