package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
)

const reportRule = "======================================================================"

// RenderReport writes the full text report for one metrics snapshot
func RenderReport(w io.Writer, m *models.Metrics, recs []scoring.Recommendation) {
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "TWITTER ARCHIVE ANALYTICS REPORT")
	fmt.Fprintln(w, reportRule)

	if m.Username != "" {
		fmt.Fprintf(w, "\nAccount: @%s", m.Username)
	}
	if m.AccountID != "" {
		fmt.Fprintf(w, " (id %s)", m.AccountID)
	}
	fmt.Fprintf(w, "\nGenerated: %s\n", m.GeneratedAt.Format(time.RFC3339))

	renderNetwork(w, m)
	renderContent(w, m)
	renderInterests(w, m)
	renderActivity(w, m)
	renderHistory(w, m)
	renderRecommendations(w, recs)

	fmt.Fprintln(w, "\n"+reportRule)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func renderNetwork(w io.Writer, m *models.Metrics) {
	section(w, "Network Quality")
	fmt.Fprintf(w, "Followers:            %d\n", m.FollowerCount)
	fmt.Fprintf(w, "Following:            %d\n", m.FollowingCount)
	fmt.Fprintf(w, "Mutual connections:   %d\n", m.MutualCount)
	fmt.Fprintf(w, "Not following back:   %d\n", m.OneSidedFollowerCount)
	fmt.Fprintf(w, "Not followed back:    %d\n", m.OneSidedFollowingCount)
	fmt.Fprintf(w, "Follower ratio:       %.2f\n", m.FollowerRatio)
	fmt.Fprintf(w, "Engagement rate:      %.1f%%\n", m.EngagementRate)
	fmt.Fprintf(w, "Network quality:      %d/100\n", m.NetworkQualityScore)
}

func renderContent(w io.Writer, m *models.Metrics) {
	section(w, "Content Patterns")
	fmt.Fprintf(w, "Total tweets: %d, total likes: %d (%.2f likes per tweet)\n",
		m.TweetCount, m.LikeCount, m.LikeTweetRatio)
	fmt.Fprintf(w, "Original: %d (%d%%)  Replies: %d (%d%%)  Retweets: %d (%d%%)  Quotes: %d (%d%%)\n",
		m.TweetTypes.Original, m.ContentMix.Original,
		m.TweetTypes.Reply, m.ContentMix.Reply,
		m.TweetTypes.Retweet, m.ContentMix.Retweet,
		m.TweetTypes.Quote, m.ContentMix.Quote)
	fmt.Fprintf(w, "Average tweet length: %.1f characters\n", m.AvgTweetLength)
	if m.BlockedCount > 0 || m.MutedCount > 0 {
		fmt.Fprintf(w, "Blocked: %d, muted: %d\n", m.BlockedCount, m.MutedCount)
	}
}

func renderInterests(w io.Writer, m *models.Metrics) {
	if len(m.TopHashtags) == 0 && len(m.TopMentions) == 0 {
		return
	}
	section(w, "Interests")
	renderTable(w, "Top hashtags", "#", m.TopHashtags)
	renderTable(w, "Top mentions", "@", m.TopMentions)
	renderTable(w, "Top keywords", "", m.TopKeywords)
}

func renderTable(w io.Writer, title, prefix string, rows []models.TagCount) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, row := range rows {
		fmt.Fprintf(w, "  %s%-20s %d\n", prefix, row.Tag, row.Count)
	}
}

func renderActivity(w io.Writer, m *models.Metrics) {
	if m.PeakHour < 0 {
		return
	}
	section(w, "Activity")
	fmt.Fprintf(w, "Peak hour: %02d:00, peak day: %s\n", m.PeakHour, m.PeakDayName())
	if m.FirstTweetAt != nil && m.LastTweetAt != nil {
		fmt.Fprintf(w, "Active from %s to %s\n",
			m.FirstTweetAt.Format("2006-01-02"), m.LastTweetAt.Format("2006-01-02"))
	}
}

func renderHistory(w io.Writer, m *models.Metrics) {
	if m.AccountAgeDays <= 0 {
		return
	}
	section(w, "Account History")
	fmt.Fprintf(w, "Account age: %.1f years (%d days)\n",
		float64(m.AccountAgeDays)/365.25, m.AccountAgeDays)
	fmt.Fprintf(w, "Average activity: %.2f tweets/day\n", m.TweetsPerDay)
}

func renderRecommendations(w io.Writer, recs []scoring.Recommendation) {
	section(w, "Recommendations")
	if len(recs) == 0 {
		fmt.Fprintln(w, "Your Twitter usage looks healthy.")
		fmt.Fprintln(w, "Keep engaging with your community and creating quality content.")
		return
	}
	for i, rec := range recs {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec.Category)
		fmt.Fprintf(w, "   Insight: %s\n", rec.Tip)
		fmt.Fprintf(w, "   Action:  %s\n", rec.Action)
	}
}
