package feed

// Feed processing types

type Feed struct {
	Title   string
	Link    string
	Entries []Entry
}

// Entry is a single feed item as retrieved. Published is the raw string
// from the feed and is never reformatted.
type Entry struct {
	ID          string
	Title       string
	Link        string
	Published   string
	Description string
	Content     string // article text, only set when extraction is enabled
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension) or the source URL
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
	Filters  []ConfigFilter `yaml:"filters"`
}

type ConfigSettings struct {
	Enabled        *bool `yaml:"enabled"`
	Timeout        int   `yaml:"timeout"`         // seconds
	ExtractContent bool  `yaml:"extract_content"` // attach readable article text to exports
}

func (s ConfigSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
