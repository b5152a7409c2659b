package analyzer

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tweetlens/tweetlens/internal/models"
)

// ContentStats holds per-bucket classification, frequency tables and
// temporal activity distributions for one tweet list.
type ContentStats struct {
	TweetCount int

	TypeCounts models.ContentMix // raw counts per bucket
	MixPercent models.ContentMix // integer percentages, sum 100 when tweets exist

	Hashtags []models.TagCount // full table, count desc, first-seen tie-break
	Mentions []models.TagCount

	HourHistogram [24]int
	DayHistogram  [7]int
	PeakHour      int // -1 when no parsable timestamps
	PeakDay       int
	FirstTweetAt  *time.Time
	LastTweetAt   *time.Time

	AvgTextLength float64
	AvgHashtags   float64
	AvgMentions   float64
}

// AnalyzeContent classifies tweets and computes content metrics.
// An empty tweet list yields zero values throughout; tweets without a
// parsable timestamp are excluded from temporal buckets only.
func AnalyzeContent(tweets []models.Tweet) ContentStats {
	stats := ContentStats{
		TweetCount: len(tweets),
		PeakHour:   -1,
		PeakDay:    -1,
	}

	hashtags := newFreqCounter()
	mentions := newFreqCounter()

	var textLen, hashtagCount, mentionCount int
	timestamped := 0

	for i := range tweets {
		t := &tweets[i]

		switch t.Kind() {
		case models.KindRetweet:
			stats.TypeCounts.Retweet++
		case models.KindQuote:
			stats.TypeCounts.Quote++
		case models.KindReply:
			stats.TypeCounts.Reply++
		default:
			stats.TypeCounts.Original++
		}

		textLen += utf8.RuneCountInString(t.FullText)
		hashtagCount += len(t.Hashtags)
		mentionCount += len(t.Mentions)

		for _, h := range t.Hashtags {
			hashtags.add(h)
		}
		for _, m := range t.Mentions {
			mentions.add(m)
		}

		if !t.HasTimestamp() {
			continue
		}
		timestamped++
		stats.HourHistogram[t.CreatedAt.Hour()]++
		stats.DayHistogram[int(t.CreatedAt.Weekday())]++

		ts := t.CreatedAt
		if stats.FirstTweetAt == nil || ts.Before(*stats.FirstTweetAt) {
			stats.FirstTweetAt = &ts
		}
		if stats.LastTweetAt == nil || ts.After(*stats.LastTweetAt) {
			stats.LastTweetAt = &ts
		}
	}

	stats.Hashtags = hashtags.table()
	stats.Mentions = mentions.table()

	if len(tweets) > 0 {
		n := float64(len(tweets))
		stats.AvgTextLength = float64(textLen) / n
		stats.AvgHashtags = float64(hashtagCount) / n
		stats.AvgMentions = float64(mentionCount) / n
		stats.MixPercent = mixPercentages(stats.TypeCounts, len(tweets))
	}

	if timestamped > 0 {
		stats.PeakHour = argmax(stats.HourHistogram[:])
		stats.PeakDay = argmax(stats.DayHistogram[:])
	}

	return stats
}

// argmax returns the index of the largest bucket, earliest index on ties
func argmax(buckets []int) int {
	best := 0
	for i, v := range buckets {
		if v > buckets[best] {
			best = i
		}
	}
	return best
}

// mixPercentages converts bucket counts to integer percentages that sum
// to exactly 100, distributing rounding remainders to the largest
// fractional parts.
func mixPercentages(counts models.ContentMix, total int) models.ContentMix {
	raw := [4]float64{
		float64(counts.Original) / float64(total) * 100,
		float64(counts.Reply) / float64(total) * 100,
		float64(counts.Retweet) / float64(total) * 100,
		float64(counts.Quote) / float64(total) * 100,
	}

	var out [4]int
	sum := 0
	for i, v := range raw {
		out[i] = int(math.Floor(v))
		sum += out[i]
	}
	for sum < 100 {
		best := 0
		bestFrac := -1.0
		for i, v := range raw {
			frac := v - math.Floor(v)
			if frac > bestFrac {
				bestFrac = frac
				best = i
			}
		}
		out[best]++
		raw[best] = math.Floor(raw[best])
		sum++
	}

	return models.ContentMix{Original: out[0], Reply: out[1], Retweet: out[2], Quote: out[3]}
}

// freqCounter groups case-insensitively while preserving first-seen
// casing for display and first-seen order for tie-breaking.
type freqCounter struct {
	counts  map[string]int
	display map[string]string
	order   map[string]int
	next    int
}

func newFreqCounter() *freqCounter {
	return &freqCounter{
		counts:  make(map[string]int),
		display: make(map[string]string),
		order:   make(map[string]int),
	}
}

func (f *freqCounter) add(term string) {
	if term == "" {
		return
	}
	key := strings.ToLower(term)
	if _, seen := f.counts[key]; !seen {
		f.display[key] = term
		f.order[key] = f.next
		f.next++
	}
	f.counts[key]++
}

// table returns rows sorted by count descending, first-seen order on ties
func (f *freqCounter) table() []models.TagCount {
	keys := make([]string, 0, len(f.counts))
	for k := range f.counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if f.counts[a] != f.counts[b] {
			return f.counts[a] > f.counts[b]
		}
		return f.order[a] < f.order[b]
	})

	out := make([]models.TagCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.TagCount{Tag: f.display[k], Count: f.counts[k]})
	}
	return out
}

// TopN returns the first n rows of a frequency table
func TopN(table []models.TagCount, n int) []models.TagCount {
	if len(table) <= n {
		return table
	}
	return table[:n]
}
