package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
)

func testArchive() *archive.Archive {
	return &archive.Archive{
		Account: &models.Account{ID: "42", Username: "tester"},
		Followers: []models.FollowEdge{
			{AccountID: "A", UserLink: "https://twitter.com/intent/user?user_id=A"},
			{AccountID: "B"},
		},
		Following: []models.FollowEdge{
			{AccountID: "B"},
			{AccountID: "C"},
		},
		Tweets: []models.Tweet{
			{ID: "1", FullText: "hello, \"world\" #go",
				Hashtags:  []string{"go"},
				CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)},
			{ID: "2", FullText: "@friend yes", ReplyToID: "9", Mentions: []string{"friend"}},
		},
		Likes: []models.LikedTweet{
			{TweetID: "7", FullText: "nice", ExpandedURL: "https://twitter.com/i/status/7"},
		},
	}
}

func readCSV(t *testing.T, dir, name string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Opening %s: %v", name, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Parsing %s: %v", name, err)
	}
	return rows
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	ar := testArchive()
	m := &models.Metrics{AccountID: "42", Username: "tester", PeakHour: -1, PeakDay: -1}

	if err := NewExporter(dir).ExportAll(ar, m); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	followers := readCSV(t, dir, "followers.csv")
	if len(followers) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(followers))
	}
	if followers[0][0] != "account_id" || followers[0][1] != "user_link" {
		t.Errorf("Unexpected followers header: %v", followers[0])
	}
	if followers[1][0] != "A" {
		t.Errorf("Expected first follower A, got %s", followers[1][0])
	}

	mutual := readCSV(t, dir, "mutual_connections.csv")
	if len(mutual) != 2 || mutual[1][0] != "B" || mutual[1][1] != "mutual" {
		t.Errorf("Unexpected mutual rows: %v", mutual)
	}

	notBack := readCSV(t, dir, "not_followed_back.csv")
	if len(notBack) != 2 || notBack[1][0] != "C" {
		t.Errorf("Expected C in not_followed_back, got %v", notBack)
	}

	oneWayIn := readCSV(t, dir, "followers_not_following_back.csv")
	if len(oneWayIn) != 2 || oneWayIn[1][0] != "A" {
		t.Errorf("Expected A in followers_not_following_back, got %v", oneWayIn)
	}

	tweets := readCSV(t, dir, "tweets.csv")
	if len(tweets) != 3 {
		t.Fatalf("Expected header plus 2 tweet rows, got %d", len(tweets))
	}
	if tweets[1][2] != `hello, "world" #go` {
		t.Errorf("Quoted text should survive the CSV round trip, got %q", tweets[1][2])
	}
	if tweets[1][5] != "original" || tweets[2][5] != "reply" {
		t.Errorf("Unexpected tweet types: %s / %s", tweets[1][5], tweets[2][5])
	}
	if tweets[2][1] != "" {
		t.Errorf("Untimestamped tweet should export an empty created_at, got %q", tweets[2][1])
	}

	likes := readCSV(t, dir, "likes.csv")
	if len(likes) != 2 || likes[1][0] != "7" {
		t.Errorf("Unexpected likes rows: %v", likes)
	}
}

func TestExportEmptyCollections(t *testing.T) {
	dir := t.TempDir()
	m := &models.Metrics{PeakHour: -1, PeakDay: -1}

	if err := NewExporter(dir).ExportAll(&archive.Archive{}, m); err != nil {
		t.Fatalf("Empty archive should still export: %v", err)
	}

	for _, name := range []string{
		"followers.csv", "following.csv", "mutual_connections.csv",
		"not_followed_back.csv", "followers_not_following_back.csv",
		"tweets.csv", "likes.csv",
	} {
		rows := readCSV(t, dir, name)
		if len(rows) != 1 {
			t.Errorf("%s should be header-only, got %d rows", name, len(rows))
		}
	}
}

func TestInsightsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	first := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	m := &models.Metrics{
		AccountID:           "42",
		Username:            "tester",
		GeneratedAt:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		FollowerCount:       3,
		FollowingCount:      2,
		MutualCount:         1,
		FollowerRatio:       1.5,
		EngagementRate:      50,
		NetworkQualityScore: 87,
		TweetCount:          10,
		LikeCount:           5,
		LikeTweetRatio:      0.5,
		TweetTypes:          models.ContentMix{Original: 6, Reply: 4},
		ContentMix:          models.ContentMix{Original: 60, Reply: 40},
		TopHashtags:         []models.TagCount{{Tag: "Go", Count: 3}},
		PeakHour:            9,
		PeakDay:             1,
		FirstTweetAt:        &first,
		AvgTweetLength:      42.5,
	}

	if err := NewExporter(dir).ExportInsights(m); err != nil {
		t.Fatalf("ExportInsights failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "insights.json"))
	if err != nil {
		t.Fatalf("Reading insights.json: %v", err)
	}

	var doc Insights
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Re-parsing insights.json: %v", err)
	}

	got := doc.Metrics
	if got.FollowerCount != m.FollowerCount || got.MutualCount != m.MutualCount ||
		got.NetworkQualityScore != m.NetworkQualityScore ||
		got.FollowerRatio != m.FollowerRatio || got.AvgTweetLength != m.AvgTweetLength {
		t.Errorf("Scalar values changed across the round trip: %+v", got)
	}
	if got.PeakHour != 9 || got.PeakDay != 1 {
		t.Errorf("Peak values changed: hour=%d day=%d", got.PeakHour, got.PeakDay)
	}
	if len(got.TopHashtags) != 1 || got.TopHashtags[0] != m.TopHashtags[0] {
		t.Errorf("Hashtag table changed: %v", got.TopHashtags)
	}
	if !got.FirstTweetAt.Equal(first) {
		t.Errorf("Timestamp changed: %v", got.FirstTweetAt)
	}
}

func TestRenderReport(t *testing.T) {
	var sb strings.Builder
	m := &models.Metrics{
		AccountID:           "42",
		Username:            "tester",
		FollowerCount:       100,
		FollowingCount:      80,
		MutualCount:         60,
		EngagementRate:      75,
		NetworkQualityScore: 90,
		TweetCount:          10,
		TweetTypes:          models.ContentMix{Original: 6, Reply: 4},
		ContentMix:          models.ContentMix{Original: 60, Reply: 40},
		PeakHour:            9,
		PeakDay:             1,
	}

	RenderReport(&sb, m, nil)
	out := sb.String()

	for _, want := range []string{
		"@tester",
		"Network quality:      90/100",
		"Peak hour: 09:00, peak day: Monday",
		"looks healthy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report should contain %q:\n%s", want, out)
		}
	}

	sb.Reset()
	RenderReport(&sb, m, []scoring.Recommendation{
		{Category: "Engagement", Tip: "tip", Action: "act"},
	})
	if !strings.Contains(sb.String(), "1. Engagement") {
		t.Error("Report should list fired recommendations")
	}
}
