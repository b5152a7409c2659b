package analyzer

import (
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/util"
)

// InterestStats holds combined topic tables across authored tweets and
// liked tweets.
type InterestStats struct {
	Hashtags []models.TagCount
	Mentions []models.TagCount
	Keywords []models.TagCount
}

// AnalyzeInterests aggregates hashtags and mentions across tweets and
// likes, and extracts stop-word-filtered keywords from authored text.
func AnalyzeInterests(tweets []models.Tweet, likes []models.LikedTweet) InterestStats {
	hashtags := newFreqCounter()
	mentions := newFreqCounter()
	keywords := newFreqCounter()

	for i := range tweets {
		t := &tweets[i]
		for _, h := range t.Hashtags {
			hashtags.add(h)
		}
		for _, m := range t.Mentions {
			mentions.add(m)
		}
		for _, w := range util.ExtractKeywords(t.FullText) {
			keywords.add(w)
		}
	}

	// Likes carry only raw text, so hashtags and mentions come from a scan
	for i := range likes {
		for _, h := range util.ExtractHashtags(likes[i].FullText) {
			hashtags.add(h)
		}
		for _, m := range util.ExtractMentions(likes[i].FullText) {
			mentions.add(m)
		}
	}

	return InterestStats{
		Hashtags: hashtags.table(),
		Mentions: mentions.table(),
		Keywords: keywords.table(),
	}
}
