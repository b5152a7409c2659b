package analyzer

import (
	"time"

	"github.com/tweetlens/tweetlens/internal/models"
)

// BehaviorStats holds engagement habits and account-history metrics
type BehaviorStats struct {
	LikeTweetRatio float64
	BlockedCount   int
	MutedCount     int
	AccountAgeDays int
	TweetsPerDay   float64
	LikesPerDay    float64
}

// AnalyzeBehavior computes behavior metrics. The account may be nil when
// the archive had no account file; age-derived metrics stay zero then.
func AnalyzeBehavior(account *models.Account, tweetCount, likeCount, blockedCount, mutedCount int, now time.Time) BehaviorStats {
	stats := BehaviorStats{
		BlockedCount: blockedCount,
		MutedCount:   mutedCount,
	}

	if tweetCount > 0 {
		stats.LikeTweetRatio = float64(likeCount) / float64(tweetCount)
	}

	if account == nil || account.CreatedAt.IsZero() {
		return stats
	}

	ageDays := int(now.Sub(account.CreatedAt).Hours() / 24)
	if ageDays <= 0 {
		return stats
	}

	stats.AccountAgeDays = ageDays
	stats.TweetsPerDay = float64(tweetCount) / float64(ageDays)
	stats.LikesPerDay = float64(likeCount) / float64(ageDays)
	return stats
}
