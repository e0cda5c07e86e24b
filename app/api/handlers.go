package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zenchantlive/marketnews/app/cache"
	"github.com/zenchantlive/marketnews/app/cfg"
	"github.com/zenchantlive/marketnews/app/database"
	"github.com/zenchantlive/marketnews/app/feed"
	"github.com/zenchantlive/marketnews/app/metrics"
	"github.com/zenchantlive/marketnews/app/news"
	"github.com/zenchantlive/marketnews/app/sources"
)

const defaultLimit = 50

func NewHandler(catalog *sources.Catalog, tracker *sources.FailureTracker,
	aggregator AggregatorInterface, resultCache *cache.Cache,
	articleRepo *database.ArticleRepository, recorder *metrics.Recorder) *Handler {
	return &Handler{
		catalog:     catalog,
		tracker:     tracker,
		aggregator:  aggregator,
		resultCache: resultCache,
		articleRepo: articleRepo,
		recorder:    recorder,
	}
}

// GetNews serves the latest aggregated batch. A fresh or stale cache entry is
// served directly; on a miss the handler runs a live aggregation and caches
// the result.
func (h *Handler) GetNews(c *gin.Context) {
	query, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles, state := h.resultCache.Get()
	served := string(state)
	if h.recorder != nil {
		h.recorder.RecordCacheLookup(served)
	}

	if state == cache.StateMiss {
		appCfg := cfg.Get()
		articles, err = h.aggregator.Run(c.Request.Context(), news.Options{
			MaxArticlesPerFeed:  appCfg.MaxArticlesPerFeed,
			MaxTotalArticles:    appCfg.MaxTotalArticles,
			MaxAgeHours:         appCfg.MaxAgeHours,
			EnableDeduplication: true,
		})
		if err != nil {
			if errors.Is(err, news.ErrNoArticles) {
				slog.Error("Aggregation produced no articles", "error", err)
				// 503 only when the outage is transient (timeouts, network);
				// parse failures and empty feeds are a server-side problem
				if feed.IsTransient(err) {
					c.Header("Retry-After", "60")
					c.JSON(http.StatusServiceUnavailable, gin.H{
						"error": "No articles available, all sources failed or returned nothing",
					})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "No articles available, all sources failed or returned nothing",
				})
				return
			}
			slog.Error("Live aggregation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate news"})
			return
		}
		h.resultCache.Store(articles)
		served = "live"
	}

	result := news.ApplyQuery(articles, query)

	c.Header("X-Cache", served)
	c.JSON(http.StatusOK, gin.H{
		"articles":     result,
		"count":        len(result),
		"cache":        served,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func parseQuery(c *gin.Context) (news.Query, error) {
	query := news.Query{Limit: defaultLimit}

	query.Category = c.Query("category")

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return query, errors.New("limit must be a positive integer")
		}
		query.Limit = limit
	}

	if raw := c.Query("min_relevance"); raw != "" {
		minRelevance, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRelevance < 0 || minRelevance > 1 {
			return query, errors.New("min_relevance must be a number between 0 and 1")
		}
		query.MinRelevance = minRelevance
	}

	if raw := c.Query("watchlist"); raw != "" {
		query.Watchlist = strings.Split(raw, ",")
	}

	return query, nil
}

// GetHealth reports service status. The service is degraded when fewer than
// three enabled sources are currently healthy.
func (h *Handler) GetHealth(c *gin.Context) {
	enabled := h.catalog.Enabled()
	names := make([]string, len(enabled))
	for i, source := range enabled {
		names[i] = source.Name
	}
	healthy := h.tracker.HealthyCount(names)

	status := "ok"
	if healthy < 3 {
		status = "degraded"
	}

	health := gin.H{
		"status":    status,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.Get().Version,
		"sources": gin.H{
			"total":   h.catalog.Count(),
			"enabled": len(enabled),
			"healthy": healthy,
		},
	}

	if age, ok := h.resultCache.Age(); ok {
		health["cache_age_seconds"] = int(age.Seconds())
	}

	c.JSON(http.StatusOK, health)
}

// GetStats summarizes the current batch and the persisted article history.
func (h *Handler) GetStats(c *gin.Context) {
	articles, state := h.resultCache.Get()
	stats := news.ComputeStats(articles)

	response := gin.H{
		"cache": string(state),
		"batch": stats,
	}

	if stored, err := h.articleRepo.GetArticleCount(); err == nil {
		response["stored_articles"] = stored
	} else {
		slog.Error("Database error", "operation", "get_article_count", "error", err)
	}

	if counts, err := h.articleRepo.GetSourceCounts(); err == nil {
		response["stored_by_source"] = counts
	} else {
		slog.Error("Database error", "operation", "get_source_counts", "error", err)
	}

	c.JSON(http.StatusOK, response)
}

// APIListSources lists every configured source with its circuit state.
func (h *Handler) APIListSources(c *gin.Context) {
	all := h.catalog.All()

	list := make([]gin.H, 0, len(all))
	for _, source := range all {
		info := gin.H{
			"name":        source.Name,
			"url":         source.URL,
			"category":    source.Category,
			"credibility": source.Credibility,
			"enabled":     source.Settings.Enabled,
			"max_items":   source.Settings.MaxItems,
			"circuit":     "closed",
		}

		if h.tracker.IsOpen(source.Name) {
			info["circuit"] = "open"
		}
		if record := h.tracker.Get(source.Name); record != nil {
			info["consecutive_failures"] = record.ConsecutiveFailures
			info["last_attempt"] = record.LastAttempt.UTC().Format(time.RFC3339)
		}

		list = append(list, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": list,
		"total":   len(list),
	})
}

// APIToggleSource flips a source's enabled flag for the running process.
func (h *Handler) APIToggleSource(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	source, err := h.catalog.Get(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source not found", "name": name})
		return
	}

	enabled := !source.Settings.Enabled
	if err := h.catalog.Toggle(name, enabled); err != nil {
		slog.Error("Failed to toggle source", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle source"})
		return
	}

	slog.Info("Source toggled", "source", name, "enabled", enabled)

	c.JSON(http.StatusOK, gin.H{
		"name":    name,
		"enabled": enabled,
	})
}
