package analyzer

import (
	"testing"
	"time"

	"github.com/tweetlens/tweetlens/internal/models"
)

func at(hour int, weekday time.Weekday) time.Time {
	// 2024-09-01 was a Sunday
	day := 1 + int(weekday)
	return time.Date(2024, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestAnalyzeContentClassification(t *testing.T) {
	tweets := []models.Tweet{
		{ID: "1", FullText: "plain tweet"},
		{ID: "2", FullText: "RT @someone: reshared", RetweetOfID: "10"},
		{ID: "3", FullText: "@friend sure", ReplyToID: "11"},
		{ID: "4", FullText: "look at this", QuotedID: "12"},
		// Retweet wins even when reply and quote markers are present
		{ID: "5", FullText: "RT @x: y", RetweetOfID: "13", ReplyToID: "14", IsQuoteStatus: true},
	}

	stats := AnalyzeContent(tweets)

	if stats.TypeCounts.Original != 1 || stats.TypeCounts.Retweet != 2 ||
		stats.TypeCounts.Reply != 1 || stats.TypeCounts.Quote != 1 {
		t.Errorf("Unexpected classification: %+v", stats.TypeCounts)
	}
	if stats.TypeCounts.Total() != len(tweets) {
		t.Errorf("Every tweet must land in exactly one bucket, total %d of %d",
			stats.TypeCounts.Total(), len(tweets))
	}
}

func TestAnalyzeContentMixSumsToHundred(t *testing.T) {
	tests := []struct {
		name   string
		tweets []models.Tweet
	}{
		{"thirds", []models.Tweet{
			{ID: "1"}, {ID: "2", ReplyToID: "x"}, {ID: "3", RetweetOfID: "y"},
		}},
		{"sevenths", []models.Tweet{
			{ID: "1"}, {ID: "2"}, {ID: "3"},
			{ID: "4", ReplyToID: "x"}, {ID: "5", ReplyToID: "x"},
			{ID: "6", RetweetOfID: "y"}, {ID: "7", QuotedID: "z"},
		}},
		{"single", []models.Tweet{{ID: "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := AnalyzeContent(tt.tweets)
			if got := stats.MixPercent.Total(); got != 100 {
				t.Errorf("Content mix should sum to 100, got %d: %+v", got, stats.MixPercent)
			}
		})
	}
}

func TestAnalyzeContentEmptyList(t *testing.T) {
	stats := AnalyzeContent(nil)

	if stats.MixPercent != (models.ContentMix{}) {
		t.Errorf("Empty list should produce zero mix, got %+v", stats.MixPercent)
	}
	if stats.AvgTextLength != 0 || stats.AvgHashtags != 0 || stats.AvgMentions != 0 {
		t.Error("Empty list should produce zero averages")
	}
	if stats.PeakHour != -1 || stats.PeakDay != -1 {
		t.Errorf("Empty list should leave peaks unset, got hour=%d day=%d",
			stats.PeakHour, stats.PeakDay)
	}
}

func TestHashtagCaseInsensitiveGrouping(t *testing.T) {
	tweets := []models.Tweet{
		{ID: "1", FullText: "hi #AI #ai", Hashtags: []string{"AI", "ai"}},
	}

	stats := AnalyzeContent(tweets)

	if len(stats.Hashtags) != 1 {
		t.Fatalf("Expected one grouped hashtag entry, got %v", stats.Hashtags)
	}
	if stats.Hashtags[0].Tag != "AI" || stats.Hashtags[0].Count != 2 {
		t.Errorf("Expected AI with count 2, got %+v", stats.Hashtags[0])
	}
}

func TestFrequencyTableOrdering(t *testing.T) {
	c := newFreqCounter()
	for _, term := range []string{"beta", "alpha", "beta", "gamma", "alpha", "beta", "gamma"} {
		c.add(term)
	}

	table := c.table()
	// beta=3, then alpha and gamma tie at 2 with alpha seen first
	want := []models.TagCount{{Tag: "beta", Count: 3}, {Tag: "alpha", Count: 2}, {Tag: "gamma", Count: 2}}
	if len(table) != len(want) {
		t.Fatalf("Expected %d rows, got %v", len(want), table)
	}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, want[i], table[i])
		}
	}
}

func TestActivityHistogramAndPeaks(t *testing.T) {
	tweets := []models.Tweet{
		{ID: "1", CreatedAt: at(9, time.Monday)},
		{ID: "2", CreatedAt: at(9, time.Monday)},
		{ID: "3", CreatedAt: at(17, time.Wednesday)},
		{ID: "4"}, // no timestamp, excluded from temporal buckets
	}

	stats := AnalyzeContent(tweets)

	if stats.HourHistogram[9] != 2 || stats.HourHistogram[17] != 1 {
		t.Errorf("Unexpected hour histogram: %v", stats.HourHistogram)
	}
	if stats.PeakHour != 9 {
		t.Errorf("Expected peak hour 9, got %d", stats.PeakHour)
	}
	if stats.PeakDay != int(time.Monday) {
		t.Errorf("Expected peak day Monday, got %d", stats.PeakDay)
	}
	if stats.TypeCounts.Total() != 4 {
		t.Error("Untimestamped tweets still count toward the content mix")
	}
	if stats.FirstTweetAt == nil || !stats.FirstTweetAt.Equal(at(9, time.Monday)) {
		t.Errorf("Unexpected first tweet time: %v", stats.FirstTweetAt)
	}
}

func TestPeakTiesBreakToEarliestIndex(t *testing.T) {
	tweets := []models.Tweet{
		{ID: "1", CreatedAt: at(8, time.Tuesday)},
		{ID: "2", CreatedAt: at(15, time.Friday)},
	}

	stats := AnalyzeContent(tweets)

	if stats.PeakHour != 8 {
		t.Errorf("Tied hour buckets should resolve to the earliest, got %d", stats.PeakHour)
	}
	if stats.PeakDay != int(time.Tuesday) {
		t.Errorf("Tied day buckets should resolve to the earliest, got %d", stats.PeakDay)
	}
}

func TestAnalyzeContentAverages(t *testing.T) {
	tweets := []models.Tweet{
		{ID: "1", FullText: "abcd", Hashtags: []string{"one", "two"}, Mentions: []string{"m"}},
		{ID: "2", FullText: "ab"},
	}

	stats := AnalyzeContent(tweets)

	if stats.AvgTextLength != 3 {
		t.Errorf("Expected average text length 3, got %f", stats.AvgTextLength)
	}
	if stats.AvgHashtags != 1 {
		t.Errorf("Expected average hashtags 1, got %f", stats.AvgHashtags)
	}
	if stats.AvgMentions != 0.5 {
		t.Errorf("Expected average mentions 0.5, got %f", stats.AvgMentions)
	}
}
