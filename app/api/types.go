package api

import (
	"context"

	"github.com/sduras/webwatch/app/scrape"
	"github.com/sduras/webwatch/app/sources"
)

type EngineInterface interface {
	Run(ctx context.Context, specs []sources.Spec) scrape.BatchResult
}

var _ EngineInterface = (*scrape.Engine)(nil)

type FormatterInterface interface {
	Run(batch scrape.BatchResult) string
}

var _ FormatterInterface = (*scrape.Formatter)(nil)

type Handler struct {
	engine    EngineInterface
	formatter FormatterInterface
	generator *Generator
	specs     []sources.Spec
	cache     *snapshotCache
}
