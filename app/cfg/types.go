package cfg

type Cfg struct {
	// Application configuration
	SourcesDir      string
	Port            string
	DBPath          string
	WorkerCount     int
	RefreshInterval int
	APIAccessKey    string

	// Aggregation defaults
	MaxArticlesPerFeed int
	MaxTotalArticles   int
	MaxAgeHours        int
	FetchBatchSize     int
	FetchTimeout       int

	// Result cache windows, seconds
	CacheFreshWindow int
	CacheStaleWindow int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
