package cfg

type Cfg struct {
	// Application configuration
	SourcesFile  string
	Port         string
	BaseUrl      string
	Concurrency  int
	SnapshotTTL  int
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
