package scrape

import "context"

// Source modes understood by the engine besides dedicated strategies.
const (
	ModeFeed    = "feed"
	ModeArticle = "article"
)

// StrategyFunc extracts records from a single source. Implementations
// return an empty slice when the page layout yields nothing; an error means
// the source could not be fetched or parsed at all.
type StrategyFunc func(ctx context.Context, f *Fetcher, url string) ([]Record, error)

// strategies maps source names to dedicated extraction strategies. The set
// is fixed at compile time; sources without an entry use the generic CSS
// selector path or one of the modes above.
var strategies = map[string]StrategyFunc{
	"Debian":      fetchDebian,
	"Python":      fetchPython,
	"Vim":         fetchVim,
	"GnuPG":       fetchGnuPG,
	"cmus":        fetchCmus,
	"aShell":      fetchAShell,
	"picoopenpgp": fetchPicoOpenPGP,
	"BBC":         fetchBBC,
	"DW":          fetchDW,
	"CNN":         fetchCNN,
	"Irish Times": fetchIrishTimes,
}

// LookupStrategy returns the dedicated strategy registered for a source
// name, if any.
func LookupStrategy(name string) (StrategyFunc, bool) {
	strategy, ok := strategies[name]
	return strategy, ok
}
