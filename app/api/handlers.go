package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sduras/webwatch/app/cfg"
	"github.com/sduras/webwatch/app/scrape"
	"github.com/sduras/webwatch/app/sources"
)

func NewHandler(engine EngineInterface, specs []sources.Spec) *Handler {
	cfg := cfg.Get()

	return &Handler{
		engine:    engine,
		formatter: scrape.NewFormatter(),
		generator: NewGenerator(),
		specs:     specs,
		cache:     newSnapshotCache(time.Duration(cfg.SnapshotTTL) * time.Second),
	}
}

// snapshot returns the cached batch when it is still fresh, otherwise runs
// the engine and stores the result.
func (h *Handler) snapshot(ctx context.Context) scrape.BatchResult {
	if batch, ok := h.cache.get(); ok {
		return batch
	}

	batch := h.engine.Run(ctx, h.specs)
	h.cache.set(batch)

	return batch
}

func (h *Handler) GetUpdates(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot(c.Request.Context()))
}

func (h *Handler) GetDigest(c *gin.Context) {
	batch := h.snapshot(c.Request.Context())

	c.String(http.StatusOK, h.formatter.Run(batch))
}

func (h *Handler) GetRSS(c *gin.Context) {
	batch := h.snapshot(c.Request.Context())

	rss, err := h.generator.Run(batch)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   len(h.specs),
	}

	if age := h.cache.age(); age > 0 {
		health["snapshot_age"] = age.Round(time.Second).String()
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIRefresh(c *gin.Context) {
	h.cache.invalidate()

	batch := h.engine.Run(c.Request.Context(), h.specs)
	h.cache.set(batch)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Snapshot refreshed successfully",
		"total_sources": batch.Metadata.TotalSources,
		"fetched_at":    batch.Metadata.FetchedAt,
	})
}
