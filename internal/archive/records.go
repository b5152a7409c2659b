package archive

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/util"
)

// createdAtLayout is the fixed timestamp format used by tweet records
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// flexInt tolerates numeric fields that arrive as JSON strings or numbers.
// Non-numeric or absent values coerce to 0; the export format is externally
// controlled, so drift here is not an error.
type flexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type edgeFields struct {
	AccountID string `json:"accountId"`
	UserLink  string `json:"userLink"`
}

type followerRecord struct {
	Follower edgeFields `json:"follower"`
}

type followingRecord struct {
	Following edgeFields `json:"following"`
}

type blockRecord struct {
	Blocking edgeFields `json:"blocking"`
}

type muteRecord struct {
	Muting edgeFields `json:"muting"`
}

type tweetRecord struct {
	Tweet struct {
		IDStr                string  `json:"id_str"`
		CreatedAt            string  `json:"created_at"`
		FullText             string  `json:"full_text"`
		FavoriteCount        flexInt `json:"favorite_count"`
		RetweetCount         flexInt `json:"retweet_count"`
		InReplyToStatusIDStr string  `json:"in_reply_to_status_id_str"`
		QuotedStatusIDStr    string  `json:"quoted_status_id_str"`
		IsQuoteStatus        bool    `json:"is_quote_status"`
		RetweetedStatus      *struct {
			IDStr string `json:"id_str"`
		} `json:"retweeted_status"`
		Entities struct {
			Hashtags []struct {
				Text string `json:"text"`
			} `json:"hashtags"`
			UserMentions []struct {
				ScreenName string `json:"screen_name"`
			} `json:"user_mentions"`
		} `json:"entities"`
	} `json:"tweet"`
}

type likeRecord struct {
	Like struct {
		TweetID     string `json:"tweetId"`
		FullText    string `json:"fullText"`
		ExpandedURL string `json:"expandedUrl"`
	} `json:"like"`
}

type accountRecord struct {
	Account struct {
		AccountID          string `json:"accountId"`
		Username           string `json:"username"`
		AccountDisplayName string `json:"accountDisplayName"`
		Email              string `json:"email"`
		CreatedAt          string `json:"createdAt"`
	} `json:"account"`
}

type profileRecord struct {
	Profile struct {
		Description struct {
			Bio      string `json:"bio"`
			Location string `json:"location"`
			Website  string `json:"website"`
		} `json:"description"`
	} `json:"profile"`
}

func decodeEdges(data []byte, wrap string) ([]models.FollowEdge, error) {
	extract := func(f edgeFields) models.FollowEdge {
		return models.FollowEdge{AccountID: f.AccountID, UserLink: f.UserLink}
	}

	switch wrap {
	case "follower":
		var recs []followerRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		out := make([]models.FollowEdge, 0, len(recs))
		for _, r := range recs {
			out = append(out, extract(r.Follower))
		}
		return out, nil
	case "following":
		var recs []followingRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		out := make([]models.FollowEdge, 0, len(recs))
		for _, r := range recs {
			out = append(out, extract(r.Following))
		}
		return out, nil
	case "blocking":
		var recs []blockRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		out := make([]models.FollowEdge, 0, len(recs))
		for _, r := range recs {
			out = append(out, extract(r.Blocking))
		}
		return out, nil
	default:
		var recs []muteRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		out := make([]models.FollowEdge, 0, len(recs))
		for _, r := range recs {
			out = append(out, extract(r.Muting))
		}
		return out, nil
	}
}

func decodeTweets(data []byte, authorID string) ([]models.Tweet, error) {
	var recs []tweetRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}

	out := make([]models.Tweet, 0, len(recs))
	for _, r := range recs {
		t := models.Tweet{
			ID:            r.Tweet.IDStr,
			AuthorID:      authorID,
			FullText:      r.Tweet.FullText,
			ReplyToID:     r.Tweet.InReplyToStatusIDStr,
			QuotedID:      r.Tweet.QuotedStatusIDStr,
			IsQuoteStatus: r.Tweet.IsQuoteStatus,
			FavoriteCount: int(r.Tweet.FavoriteCount),
			RetweetCount:  int(r.Tweet.RetweetCount),
		}
		if r.Tweet.RetweetedStatus != nil {
			t.RetweetOfID = r.Tweet.RetweetedStatus.IDStr
		}

		// Unparsable timestamps leave CreatedAt zero; the tweet stays in
		// the content mix but is excluded from temporal buckets.
		if r.Tweet.CreatedAt != "" {
			if ts, err := time.Parse(createdAtLayout, r.Tweet.CreatedAt); err == nil {
				t.CreatedAt = ts
			}
		}

		for _, h := range r.Tweet.Entities.Hashtags {
			t.Hashtags = append(t.Hashtags, h.Text)
		}
		for _, m := range r.Tweet.Entities.UserMentions {
			t.Mentions = append(t.Mentions, m.ScreenName)
		}
		// Older exports omit entities; fall back to scanning the text
		if len(t.Hashtags) == 0 {
			t.Hashtags = util.ExtractHashtags(t.FullText)
		}
		if len(t.Mentions) == 0 {
			t.Mentions = util.ExtractMentions(t.FullText)
		}

		out = append(out, t)
	}
	return out, nil
}

func decodeLikes(data []byte) ([]models.LikedTweet, error) {
	var recs []likeRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	out := make([]models.LikedTweet, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.LikedTweet{
			TweetID:     r.Like.TweetID,
			FullText:    r.Like.FullText,
			ExpandedURL: r.Like.ExpandedURL,
		})
	}
	return out, nil
}

func decodeAccount(data []byte) (*models.Account, error) {
	var recs []accountRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}

	a := recs[0].Account
	acct := &models.Account{
		ID:          a.AccountID,
		Username:    a.Username,
		DisplayName: a.AccountDisplayName,
		Email:       a.Email,
	}
	if a.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, a.CreatedAt); err == nil {
			acct.CreatedAt = ts
		}
	}
	return acct, nil
}

func decodeProfile(data []byte) (*models.Profile, error) {
	var recs []profileRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	d := recs[0].Profile.Description
	return &models.Profile{
		Bio:      d.Bio,
		Location: d.Location,
		Website:  d.Website,
	}, nil
}
