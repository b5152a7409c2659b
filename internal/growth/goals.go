package growth

import (
	"math"

	"github.com/tweetlens/tweetlens/internal/models"
)

// Goal is a target for one metric. Zero targets are skipped.
type Goal struct {
	TargetFollowers  int
	TargetEngagement float64 // percent
}

// GoalProgress reports how far a metrics snapshot is from one goal
type GoalProgress struct {
	Metric    string  `json:"metric"`
	Target    float64 `json:"target"`
	Current   float64 `json:"current"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percent"` // progress toward target, capped at 100

	// MutualNeeded is the extra mutual connections required to reach an
	// engagement target. Only set for the engagement goal.
	MutualNeeded int `json:"mutual_needed,omitempty"`
}

// TrackGoals evaluates configured targets against a metrics snapshot.
// Already-met goals report 100 percent progress and zero remaining.
func TrackGoals(m *models.Metrics, goal Goal) []GoalProgress {
	var out []GoalProgress

	if goal.TargetFollowers > 0 {
		p := GoalProgress{
			Metric:  "followers",
			Target:  float64(goal.TargetFollowers),
			Current: float64(m.FollowerCount),
		}
		p.Remaining = math.Max(p.Target-p.Current, 0)
		p.Percent = math.Min(p.Current/p.Target*100, 100)
		out = append(out, p)
	}

	if goal.TargetEngagement > 0 {
		p := GoalProgress{
			Metric:  "engagement_rate",
			Target:  goal.TargetEngagement,
			Current: m.EngagementRate,
		}
		p.Remaining = math.Max(p.Target-p.Current, 0)
		p.Percent = math.Min(p.Current/p.Target*100, 100)
		if p.Remaining > 0 {
			needed := int(goal.TargetEngagement/100*float64(m.FollowingCount)) - m.MutualCount
			if needed > 0 {
				p.MutualNeeded = needed
			}
		}
		out = append(out, p)
	}

	return out
}
