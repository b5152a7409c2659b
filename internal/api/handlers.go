package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/analyzer"
	"github.com/tweetlens/tweetlens/internal/growth"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
)

const defaultTableLimit = 20

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := gin.H{
		"status":  "OK",
		"service": "tweetlens-api",
	}
	if r.database != nil {
		if err := r.database.Health(c.Request.Context()); err != nil {
			status["status"] = "DEGRADED"
			status["database"] = err.Error()
		}
	}
	c.JSON(http.StatusOK, status)
}

// metricsHandler returns the full computed metrics snapshot
func (r *Router) metricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, r.metrics)
}

func tableLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultTableLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultTableLimit
	}
	return limit
}

// hashtagsHandler returns the hashtag frequency table
func (r *Router) hashtagsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"hashtags": analyzer.TopN(r.interests.Hashtags, tableLimit(c)),
	})
}

// mentionsHandler returns the mention frequency table
func (r *Router) mentionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mentions": analyzer.TopN(r.interests.Mentions, tableLimit(c)),
	})
}

// activityHandler returns temporal activity distributions
func (r *Router) activityHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"hour_histogram": r.metrics.HourHistogram,
		"day_histogram":  r.metrics.DayHistogram,
		"peak_hour":      r.metrics.PeakHour,
		"peak_day":       r.metrics.PeakDay,
		"peak_day_name":  r.metrics.PeakDayName(),
	})
}

// recommendationsHandler returns the fired recommendation rules
func (r *Router) recommendationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"score":           r.metrics.NetworkQualityScore,
		"recommendations": scoring.Recommend(r.metrics),
	})
}

// growthHandler compares the two most recent stored snapshots
func (r *Router) growthHandler(c *gin.Context) {
	snaps, err := r.repo.LatestTwo(c.Request.Context(), r.metrics.AccountID)
	if err != nil {
		r.logger.Error("Failed to load snapshots", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load snapshots")
		return
	}
	if len(snaps) < 2 {
		respondError(c, http.StatusNotFound,
			"need at least two stored snapshots for a growth comparison")
		return
	}

	// LatestTwo returns newest first
	report, err := growth.Compare(snaps[1], snaps[0])
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"advice": growth.Advice(report),
	})
}

// listSnapshotsHandler returns the stored snapshot history, oldest first
func (r *Router) listSnapshotsHandler(c *gin.Context) {
	snaps, err := r.repo.ListByAccount(c.Request.Context(), r.metrics.AccountID)
	if err != nil {
		r.logger.Error("Failed to list snapshots", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list snapshots")
		return
	}

	out := make([]gin.H, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, gin.H{
			"id":                    s.ID,
			"label":                 s.Label,
			"taken_at":              s.TakenAt,
			"follower_count":        s.FollowerCount,
			"following_count":       s.FollowingCount,
			"mutual_count":          s.MutualCount,
			"network_quality_score": s.NetworkQualityScore,
		})
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": out})
}

type createSnapshotRequest struct {
	Label string `json:"label"`
}

// createSnapshotHandler persists the current metrics as a snapshot
func (r *Router) createSnapshotHandler(c *gin.Context) {
	var req createSnapshotRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	snap, err := models.NewSnapshot(r.metrics,
		models.EdgeSet(r.archive.Followers),
		models.EdgeSet(r.archive.Following),
		req.Label)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := r.repo.Save(c.Request.Context(), snap); err != nil {
		r.logger.Error("Failed to save snapshot", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save snapshot")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         snap.ID,
		"account_id": snap.AccountID,
		"label":      snap.Label,
		"taken_at":   snap.TakenAt,
	})
}
