package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sduras/webwatch/app/cfg"
	"github.com/sduras/webwatch/app/metrics"
	"github.com/sduras/webwatch/app/sources"
)

// LocalTimeLayout is how the localized half of a timestamp pair appears in
// snapshots.
const LocalTimeLayout = "2006-01-02 15:04"

// task pairs a validated source spec with its resolved strategy.
type task struct {
	spec     sources.Spec
	strategy StrategyFunc
}

type taskResult struct {
	records []Record
	err     error
}

type Engine struct {
	fetcher     *Fetcher
	filterer    *Filterer
	metrics     *metrics.Metrics
	location    *time.Location
	concurrency int
}

// NewEngine wires an engine against the loaded configuration. loc controls
// the localized half of every timestamp pair.
func NewEngine(httpClient *http.Client, loc *time.Location, m *metrics.Metrics) *Engine {
	cfg := cfg.Get()

	return &Engine{
		fetcher:     NewFetcher(httpClient, cfg.UserAgent, m),
		filterer:    NewFilterer(),
		metrics:     m,
		location:    loc,
		concurrency: cfg.Concurrency,
	}
}

// Run fetches every source concurrently and consolidates the outcomes into
// one batch. A failed source keeps its slot in the batch with an empty
// record list, so consumers always see the full configured layout.
func (e *Engine) Run(ctx context.Context, specs []sources.Spec) BatchResult {
	started := time.Now()
	tasks := e.resolveTasks(specs)

	results := make([]taskResult, len(tasks))

	concurrency := e.concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			records, err := t.strategy(ctx, e.fetcher, t.spec.URL)
			results[i] = taskResult{records: records, err: err}
		}(i, t)
	}

	wg.Wait()

	batch := e.consolidate(tasks, results)

	duration := time.Since(started)
	e.metrics.ObserveBatch(duration)

	slog.Info("Batch completed",
		"sources", len(tasks),
		"categories", len(batch.Metadata.Categories),
		"duration", duration.Round(time.Millisecond).String())

	return batch
}

// resolveTasks validates specs and binds each one to a strategy. Invalid
// or unresolvable specs are skipped with a warning; they do not reserve a
// slot in the batch.
func (e *Engine) resolveTasks(specs []sources.Spec) []task {
	tasks := make([]task, 0, len(specs))

	for _, spec := range specs {
		if spec.Name == "" || spec.URL == "" {
			slog.Warn("Skipping source with missing name or URL", "name", spec.Name, "url", spec.URL)
			continue
		}

		strategy, ok := e.resolveStrategy(spec)
		if !ok {
			continue
		}

		tasks = append(tasks, task{spec: spec, strategy: strategy})
	}

	return tasks
}

func (e *Engine) resolveStrategy(spec sources.Spec) (StrategyFunc, bool) {
	if strategy, ok := LookupStrategy(spec.Name); ok {
		return strategy, true
	}

	switch spec.Mode {
	case ModeFeed:
		return FetchFeed, true
	case ModeArticle:
		return FetchArticle, true
	}

	if spec.CSSSelector != "" {
		selector := spec.CSSSelector
		return func(ctx context.Context, f *Fetcher, url string) ([]Record, error) {
			return FetchBySelector(ctx, f, url, selector)
		}, true
	}

	slog.Warn("No strategy for source, skipping", "source", spec.Name, "mode", spec.Mode)
	return nil, false
}

func (e *Engine) consolidate(tasks []task, results []taskResult) BatchResult {
	now := time.Now().UTC()

	batch := BatchResult{
		Metadata: Metadata{
			FetchedAt:      now.Format(time.RFC3339),
			FetchedAtLocal: now.In(e.location).Format(LocalTimeLayout),
			TotalSources:   len(tasks),
			Categories:     []string{},
		},
		Updates: make(map[string]map[string][]Record),
	}

	for i, t := range tasks {
		records := results[i].records

		if err := results[i].err; err != nil {
			slog.Error("Source failed", "source", t.spec.Name, "error", err)
			e.metrics.CountSourceFailure(t.spec.Name)
			records = nil
		}

		records = e.filterer.Run(records, t.spec.Filters)
		if records == nil {
			records = []Record{}
		}

		for j := range records {
			e.stamp(&records[j], now)
		}

		category := t.spec.Category
		if batch.Updates[category] == nil {
			batch.Updates[category] = make(map[string][]Record)
			batch.Metadata.Categories = append(batch.Metadata.Categories, category)
		}
		batch.Updates[category][t.spec.Name] = records

		e.metrics.CountRecords(t.spec.Name, len(records))
	}

	return batch
}

// stamp applies the timestamp policy: a record carrying its own fetch time
// keeps it and gets the localized half derived from it, everything else
// gets the shared batch time. Both halves of a pair always describe the
// same instant.
func (e *Engine) stamp(record *Record, now time.Time) {
	if record.FetchedAt != "" {
		if t, err := time.Parse(time.RFC3339, record.FetchedAt); err == nil {
			record.FetchedAtLocal = t.In(e.location).Format(LocalTimeLayout)
			return
		}
		slog.Warn("Malformed fetched_at on record, restamping", "url", record.URL, "fetched_at", record.FetchedAt)
	}

	record.FetchedAt = now.Format(time.RFC3339)
	record.FetchedAtLocal = now.In(e.location).Format(LocalTimeLayout)
}
