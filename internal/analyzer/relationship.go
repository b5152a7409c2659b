package analyzer

import (
	"github.com/tweetlens/tweetlens/internal/models"
)

// NetworkStats holds follower/following set relationships and derived
// ratios. Pure data; computing it has no side effects.
type NetworkStats struct {
	FollowerCount          int
	FollowingCount         int
	MutualCount            int
	OneSidedFollowerCount  int
	OneSidedFollowingCount int
	TotalConnectionCount   int
	FollowerRatio          float64
	EngagementRate         float64 // percent of following that follows back

	Mutual            models.IDSet
	OneSidedFollowers models.IDSet
	OneSidedFollowing models.IDSet
}

// AnalyzeNetwork computes set relationships between the follower and
// following identifier sets. Empty sets degrade to zero-valued metrics.
func AnalyzeNetwork(followers, following models.IDSet) NetworkStats {
	mutual := followers.Intersect(following)
	oneSidedFollowers := followers.Diff(following)
	oneSidedFollowing := following.Diff(followers)

	stats := NetworkStats{
		FollowerCount:          len(followers),
		FollowingCount:         len(following),
		MutualCount:            len(mutual),
		OneSidedFollowerCount:  len(oneSidedFollowers),
		OneSidedFollowingCount: len(oneSidedFollowing),
		TotalConnectionCount:   len(followers.Union(following)),
		Mutual:                 mutual,
		OneSidedFollowers:      oneSidedFollowers,
		OneSidedFollowing:      oneSidedFollowing,
	}

	// followerRatio is followerCount when nothing is followed, 0 when
	// both sides are empty.
	switch {
	case len(following) > 0:
		stats.FollowerRatio = float64(len(followers)) / float64(len(following))
	case len(followers) > 0:
		stats.FollowerRatio = float64(len(followers))
	}

	if len(following) > 0 {
		stats.EngagementRate = float64(len(mutual)) / float64(len(following)) * 100
	}

	return stats
}
