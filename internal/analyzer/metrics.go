package analyzer

import (
	"time"

	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
	"github.com/tweetlens/tweetlens/pkg/config"
)

const topTableSize = 10

// BuildMetrics runs every analyzer over one loaded archive and
// assembles the full metrics snapshot. The archive is read-only; the
// returned snapshot is never mutated after assembly.
func BuildMetrics(ar *archive.Archive, sc config.ScoringConfig, now time.Time) *models.Metrics {
	followers := models.EdgeSet(ar.Followers)
	following := models.EdgeSet(ar.Following)

	network := AnalyzeNetwork(followers, following)
	content := AnalyzeContent(ar.Tweets)
	interests := AnalyzeInterests(ar.Tweets, ar.Likes)
	behavior := AnalyzeBehavior(ar.Account,
		len(ar.Tweets), len(ar.Likes), len(ar.Blocks), len(ar.Mutes), now)

	m := &models.Metrics{
		AccountID:   ar.AccountID(),
		GeneratedAt: now,

		FollowerCount:          network.FollowerCount,
		FollowingCount:         network.FollowingCount,
		MutualCount:            network.MutualCount,
		OneSidedFollowerCount:  network.OneSidedFollowerCount,
		OneSidedFollowingCount: network.OneSidedFollowingCount,
		TotalConnectionCount:   network.TotalConnectionCount,
		FollowerRatio:          network.FollowerRatio,
		EngagementRate:         network.EngagementRate,
		NetworkQualityScore: scoring.Score(
			network.FollowerCount, network.FollowingCount, network.MutualCount, sc),

		TweetCount:     content.TweetCount,
		LikeCount:      len(ar.Likes),
		LikeTweetRatio: behavior.LikeTweetRatio,
		BlockedCount:   behavior.BlockedCount,
		MutedCount:     behavior.MutedCount,

		TweetTypes: content.TypeCounts,
		ContentMix: content.MixPercent,

		TopHashtags: TopN(interests.Hashtags, topTableSize),
		TopMentions: TopN(interests.Mentions, topTableSize),
		TopKeywords: TopN(interests.Keywords, topTableSize),

		PeakHour:      content.PeakHour,
		PeakDay:       content.PeakDay,
		HourHistogram: content.HourHistogram,
		DayHistogram:  content.DayHistogram,
		FirstTweetAt:  content.FirstTweetAt,
		LastTweetAt:   content.LastTweetAt,

		AvgTweetLength:      content.AvgTextLength,
		AvgHashtagsPerTweet: content.AvgHashtags,
		AvgMentionsPerTweet: content.AvgMentions,

		AccountAgeDays: behavior.AccountAgeDays,
		TweetsPerDay:   behavior.TweetsPerDay,
	}

	if ar.Account != nil {
		m.Username = ar.Account.Username
	}

	return m
}
