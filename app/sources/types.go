package sources

// Spec describes one configured origin to poll.
//
// Name doubles as the registry lookup key for custom-mode sources and as
// the grouping key in batch results, so it must be unique across the file.
type Spec struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	Mode        string   `yaml:"mode"`
	CSSSelector string   `yaml:"css_selector"`
	Category    string   `yaml:"category"`
	Filters     []Filter `yaml:"filters"`
}

type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

type file struct {
	Sources []Spec `yaml:"sources"`
}
