package models

import (
	"strings"
	"time"
)

// TweetKind classifies a tweet into exactly one content bucket
type TweetKind int

const (
	KindOriginal TweetKind = iota
	KindReply
	KindRetweet
	KindQuote
)

// String returns the lowercase bucket name used in reports and exports
func (k TweetKind) String() string {
	switch k {
	case KindReply:
		return "reply"
	case KindRetweet:
		return "retweet"
	case KindQuote:
		return "quote"
	default:
		return "original"
	}
}

// Tweet represents an authored tweet from the archive
type Tweet struct {
	ID            string
	AuthorID      string
	CreatedAt     time.Time // zero when the archive timestamp failed to parse
	FullText      string
	ReplyToID     string
	RetweetOfID   string
	QuotedID      string
	IsQuoteStatus bool
	FavoriteCount int
	RetweetCount  int
	Hashtags      []string
	Mentions      []string
}

// HasTimestamp reports whether the created_at field parsed successfully.
// Tweets without a timestamp are excluded from temporal buckets but still
// counted in the content mix.
func (t *Tweet) HasTimestamp() bool {
	return !t.CreatedAt.IsZero()
}

// Kind classifies the tweet. The source flags are not mutually exclusive,
// so the first match in priority order retweet > quote > reply > original
// wins to avoid double-counting.
func (t *Tweet) Kind() TweetKind {
	switch {
	case t.RetweetOfID != "" || strings.HasPrefix(t.FullText, "RT @"):
		return KindRetweet
	case t.IsQuoteStatus || t.QuotedID != "":
		return KindQuote
	case t.ReplyToID != "":
		return KindReply
	default:
		return KindOriginal
	}
}

// LikedTweet represents an engagement record, not authored content
type LikedTweet struct {
	TweetID     string
	FullText    string
	ExpandedURL string
}
