package scrape

// Record is one extracted fact. Which fields are set depends on the
// strategy that produced it: headline strategies fill Text, release
// strategies fill Title, LatestVersion and Description.
type Record struct {
	Title          string `json:"title,omitempty"`
	Text           string `json:"text,omitempty"`
	Description    string `json:"description,omitempty"`
	LatestVersion  string `json:"latest_version,omitempty"`
	URL            string `json:"url"`
	FetchedAt      string `json:"fetched_at"`
	FetchedAtLocal string `json:"fetched_at_local"`
}

type Metadata struct {
	FetchedAt      string   `json:"fetched_at"`
	FetchedAtLocal string   `json:"fetched_at_local"`
	TotalSources   int      `json:"total_sources"`
	Categories     []string `json:"categories"`
}

// BatchResult is the output of one aggregation run. Updates maps
// category to source name to the records that source produced; a failed
// source is present under its key with an empty record list.
type BatchResult struct {
	Metadata Metadata                       `json:"metadata"`
	Updates  map[string]map[string][]Record `json:"updates"`
}
