package scoring

import (
	"github.com/tweetlens/tweetlens/internal/models"
)

// Recommendation is one rule-based suggestion derived from a metrics
// snapshot.
type Recommendation struct {
	Category string `json:"category"`
	Tip      string `json:"tip"`
	Action   string `json:"action"`
}

// Rule pairs a predicate over a metrics snapshot with the
// recommendation it produces. Rules are independent; evaluation order
// only determines display order.
type Rule struct {
	Name string
	When func(m *models.Metrics) bool
	Recommendation
}

// Rules is the full rule table, evaluated in display order.
var Rules = []Rule{
	{
		Name: "follower_deficit",
		When: func(m *models.Metrics) bool {
			return m.FollowerCount*2 < m.FollowingCount
		},
		Recommendation: Recommendation{
			Category: "Network Growth",
			Tip:      "Your follower count is low compared to the number of accounts you follow.",
			Action:   "Focus on creating more engaging original content to attract followers.",
		},
	},
	{
		Name: "low_mutual_rate",
		When: func(m *models.Metrics) bool {
			return m.FollowingCount > 0 && m.FollowerCount > 0 && m.EngagementRate < 20
		},
		Recommendation: Recommendation{
			Category: "Engagement",
			Tip:      "Few of the accounts you follow are following you back.",
			Action:   "Engage more with accounts you follow by replying, retweeting and liking to build relationships.",
		},
	},
	{
		Name: "one_sided_network",
		When: func(m *models.Metrics) bool {
			return m.FollowingCount > 0 &&
				float64(m.OneSidedFollowingCount)/float64(m.FollowingCount) > 0.9
		},
		Recommendation: Recommendation{
			Category: "Network Cleanup",
			Tip:      "Nearly everyone you follow does not follow you back.",
			Action:   "Review your one-sided follows and unfollow inactive or irrelevant accounts.",
		},
	},
	{
		Name: "low_original_share",
		When: func(m *models.Metrics) bool {
			return m.TweetCount > 0 && m.TweetTypes.Original*10 < m.TweetCount*3
		},
		Recommendation: Recommendation{
			Category: "Content Strategy",
			Tip:      "Most of your tweets are replies or retweets.",
			Action:   "Create more original content to establish your unique voice.",
		},
	},
}

// Recommend evaluates every rule against the snapshot and returns the
// recommendations that fired, in rule-table order.
func Recommend(m *models.Metrics) []Recommendation {
	out := make([]Recommendation, 0, len(Rules))
	for _, r := range Rules {
		if r.When(m) {
			out = append(out, r.Recommendation)
		}
	}
	return out
}
