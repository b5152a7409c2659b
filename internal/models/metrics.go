package models

import (
	"time"
)

// TagCount is one row of a frequency table. Tag keeps the first-seen
// casing for display; grouping is case-insensitive.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ContentMix holds one value per content bucket. It is used both for
// raw counts and for integer percentages.
type ContentMix struct {
	Original int `json:"original"`
	Reply    int `json:"reply"`
	Retweet  int `json:"retweet"`
	Quote    int `json:"quote"`
}

// Total sums all four buckets
func (c ContentMix) Total() int {
	return c.Original + c.Reply + c.Retweet + c.Quote
}

// Metrics is the derived aggregate computed from one archive snapshot.
// It is computed on demand and never mutated after assembly.
type Metrics struct {
	AccountID   string    `json:"account_id"`
	Username    string    `json:"username"`
	GeneratedAt time.Time `json:"generated_at"`

	// Network
	FollowerCount          int     `json:"follower_count"`
	FollowingCount         int     `json:"following_count"`
	MutualCount            int     `json:"mutual_count"`
	OneSidedFollowerCount  int     `json:"one_sided_follower_count"`
	OneSidedFollowingCount int     `json:"one_sided_following_count"`
	TotalConnectionCount   int     `json:"total_connection_count"`
	FollowerRatio          float64 `json:"follower_ratio"`
	EngagementRate         float64 `json:"engagement_rate"`
	NetworkQualityScore    int     `json:"network_quality_score"`

	// Content volume
	TweetCount     int     `json:"tweet_count"`
	LikeCount      int     `json:"like_count"`
	LikeTweetRatio float64 `json:"like_tweet_ratio"`
	BlockedCount   int     `json:"blocked_count"`
	MutedCount     int     `json:"muted_count"`

	// Content mix
	TweetTypes ContentMix `json:"tweet_types"` // counts per bucket
	ContentMix ContentMix `json:"content_mix"` // integer percentages, sum 100 when tweets exist

	// Interests
	TopHashtags []TagCount `json:"top_hashtags"`
	TopMentions []TagCount `json:"top_mentions"`
	TopKeywords []TagCount `json:"top_keywords"`

	// Temporal activity
	PeakHour      int        `json:"peak_hour"` // -1 when no parsable timestamps
	PeakDay       int        `json:"peak_day"`  // time.Weekday numbering, -1 when unknown
	HourHistogram [24]int    `json:"hour_histogram"`
	DayHistogram  [7]int     `json:"day_histogram"`
	FirstTweetAt  *time.Time `json:"first_tweet_at,omitempty"`
	LastTweetAt   *time.Time `json:"last_tweet_at,omitempty"`

	// Averages (0 when the tweet list is empty)
	AvgTweetLength      float64 `json:"avg_tweet_length"`
	AvgHashtagsPerTweet float64 `json:"avg_hashtags_per_tweet"`
	AvgMentionsPerTweet float64 `json:"avg_mentions_per_tweet"`

	// Account history
	AccountAgeDays int     `json:"account_age_days"`
	TweetsPerDay   float64 `json:"tweets_per_day"`
}

// PeakDayName returns the weekday name for the peak day, or empty when unknown
func (m *Metrics) PeakDayName() string {
	if m.PeakDay < 0 || m.PeakDay > 6 {
		return ""
	}
	return time.Weekday(m.PeakDay).String()
}
