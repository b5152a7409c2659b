package growth

import (
	"fmt"
	"sort"

	"github.com/tweetlens/tweetlens/internal/models"
)

// SnapshotMismatchError rejects a comparison across two different
// accounts. Cross-account deltas are meaningless and must not be
// silently computed.
type SnapshotMismatchError struct {
	OldAccountID string
	NewAccountID string
}

func (e *SnapshotMismatchError) Error() string {
	return fmt.Sprintf("snapshots reference different accounts: %s vs %s",
		e.OldAccountID, e.NewAccountID)
}

// Delta is the absolute and percentage change of one scalar metric.
// Percent is 0 when the old value was 0.
type Delta struct {
	Old     float64 `json:"old"`
	New     float64 `json:"new"`
	Change  float64 `json:"change"`
	Percent float64 `json:"percent"`
}

func delta(oldV, newV float64) Delta {
	d := Delta{Old: oldV, New: newV, Change: newV - oldV}
	if oldV != 0 {
		d.Percent = d.Change / oldV * 100
	}
	return d
}

// Report is the full growth comparison between two snapshots of the
// same account.
type Report struct {
	AccountID string `json:"account_id"`
	OldLabel  string `json:"old_label"`
	NewLabel  string `json:"new_label"`

	Followers      Delta `json:"followers"`
	Following      Delta `json:"following"`
	Mutual         Delta `json:"mutual"`
	Tweets         Delta `json:"tweets"`
	Likes          Delta `json:"likes"`
	FollowerRatio  Delta `json:"follower_ratio"`
	EngagementRate Delta `json:"engagement_rate"`

	NewFollowers []string `json:"new_followers"`
	LostFollowers []string `json:"lost_followers"`
	NewFollowing []string `json:"new_following"`
	Unfollowed   []string `json:"unfollowed"`
}

// NetFollowerChange is new followers gained minus followers lost
func (r *Report) NetFollowerChange() int {
	return len(r.NewFollowers) - len(r.LostFollowers)
}

// Compare diffs two snapshots of the same account. The old snapshot
// comes first; deltas are new minus old. Neither snapshot is modified.
func Compare(oldSnap, newSnap *models.Snapshot) (*Report, error) {
	if oldSnap.AccountID != newSnap.AccountID {
		return nil, &SnapshotMismatchError{
			OldAccountID: oldSnap.AccountID,
			NewAccountID: newSnap.AccountID,
		}
	}

	oldFollowers, err := oldSnap.FollowerSet()
	if err != nil {
		return nil, fmt.Errorf("decoding old follower set: %w", err)
	}
	newFollowers, err := newSnap.FollowerSet()
	if err != nil {
		return nil, fmt.Errorf("decoding new follower set: %w", err)
	}
	oldFollowing, err := oldSnap.FollowingSet()
	if err != nil {
		return nil, fmt.Errorf("decoding old following set: %w", err)
	}
	newFollowing, err := newSnap.FollowingSet()
	if err != nil {
		return nil, fmt.Errorf("decoding new following set: %w", err)
	}

	return &Report{
		AccountID: oldSnap.AccountID,
		OldLabel:  oldSnap.Label,
		NewLabel:  newSnap.Label,

		Followers:      delta(float64(oldSnap.FollowerCount), float64(newSnap.FollowerCount)),
		Following:      delta(float64(oldSnap.FollowingCount), float64(newSnap.FollowingCount)),
		Mutual:         delta(float64(oldSnap.MutualCount), float64(newSnap.MutualCount)),
		Tweets:         delta(float64(oldSnap.TweetCount), float64(newSnap.TweetCount)),
		Likes:          delta(float64(oldSnap.LikeCount), float64(newSnap.LikeCount)),
		FollowerRatio:  delta(oldSnap.FollowerRatio, newSnap.FollowerRatio),
		EngagementRate: delta(oldSnap.EngagementRate, newSnap.EngagementRate),

		NewFollowers:  sortedDiff(newFollowers, oldFollowers),
		LostFollowers: sortedDiff(oldFollowers, newFollowers),
		NewFollowing:  sortedDiff(newFollowing, oldFollowing),
		Unfollowed:    sortedDiff(oldFollowing, newFollowing),
	}, nil
}

// sortedDiff returns a minus b in lexicographic order so reports are
// deterministic across runs.
func sortedDiff(a, b models.IDSet) []string {
	ids := a.Diff(b).Values()
	sort.Strings(ids)
	return ids
}

// Advice returns the growth recommendations that apply to the report.
// Thresholds mirror the scoring rule table: independent predicates, the
// evaluation order only fixes display order.
func Advice(r *Report) []string {
	var out []string

	switch {
	case r.Followers.Change <= 0:
		out = append(out, "Follower decline detected: focus on more engaging content and posting frequency.")
	case r.Followers.Change < 10:
		out = append(out, "Slow growth: try posting at peak hours and using relevant hashtags.")
	default:
		out = append(out, "Strong growth: keep the current cadence and stay engaged with your audience.")
	}

	if r.EngagementRate.Change < 0 {
		out = append(out, "Engagement rate dropped: review who you follow and engage with mutual connections.")
	}
	if r.Tweets.Change < 5 {
		out = append(out, "Low content production: aim for a few tweets per week.")
	}

	return out
}
