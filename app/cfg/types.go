package cfg

type Cfg struct {
	// Sources
	FeedsFile string
	FeedsDir  string

	// Output and dedup state
	OutputDir     string
	LedgerDriver  string
	LedgerFile    string
	LedgerDB      string
	MaxNameLength int
	LenientDates  bool

	// Fetching
	Timeout   int
	UserAgent string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
