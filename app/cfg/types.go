package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	SourcesDir        string
	Port              string
	BaseUrl           string
	InboxDomain       string
	WorkerCount       int
	SchedulerInterval int
	ReprocessLimit    int
	APIAccessKey      string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
