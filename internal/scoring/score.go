package scoring

import (
	"math"

	"github.com/tweetlens/tweetlens/pkg/config"
)

// Score computes the bounded network quality score in [0, 100] from
// follower, following and mutual connection counts.
//
// Three capped terms contribute: engagement rate (mutual share of
// following, as a percentage), follower ratio, and raw mutual count
// scaled by the divisor. Weights and caps come from configuration; the
// defaults cap the terms at 50, 30 and 20 points.
func Score(followers, following, mutual int, cfg config.ScoringConfig) int {
	var engagementRate, ratio float64

	if following > 0 {
		engagementRate = float64(mutual) / float64(following) * 100
		ratio = float64(followers) / float64(following)
	} else if followers > 0 {
		ratio = float64(followers)
	}

	score := math.Min(engagementRate, cfg.EngagementCap)
	score += math.Min(ratio*cfg.RatioWeight, cfg.RatioCap)
	score += math.Min(float64(mutual)/cfg.MutualDivisor*cfg.MutualWeight, cfg.MutualCap)

	// Round up so any positive contribution keeps the score above zero
	rounded := int(math.Ceil(score))
	if rounded > 100 {
		return 100
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}
