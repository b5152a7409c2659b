package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/analyzer"
	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/cache"
	"github.com/tweetlens/tweetlens/internal/db"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/logging"
)

// Router serves the dashboard API over one loaded archive snapshot.
// The archive and its metrics are computed once at startup and never
// mutated; the snapshot store is the only mutable dependency.
type Router struct {
	archive   *archive.Archive
	metrics   *models.Metrics
	interests analyzer.InterestStats
	repo      *db.SnapshotRepository
	database  *db.DB
	cache     *cache.Cache
	logger    *zap.Logger
}

// NewRouter creates a new dashboard API router
func NewRouter(ar *archive.Archive, m *models.Metrics, database *db.DB, redisCache *cache.Cache) *Router {
	return &Router{
		archive:   ar,
		metrics:   m,
		interests: analyzer.AnalyzeInterests(ar.Tweets, ar.Likes),
		repo:      db.NewSnapshotRepository(database),
		database:  database,
		cache:     redisCache,
		logger:    logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	apiGroup.GET("/metrics", r.metricsHandler)
	apiGroup.GET("/hashtags", r.hashtagsHandler)
	apiGroup.GET("/mentions", r.mentionsHandler)
	apiGroup.GET("/activity", r.activityHandler)
	apiGroup.GET("/recommendations", r.recommendationsHandler)
	apiGroup.GET("/growth", r.growthHandler)
	apiGroup.GET("/snapshots", r.listSnapshotsHandler)
	apiGroup.POST("/snapshots", r.createSnapshotHandler)
}
