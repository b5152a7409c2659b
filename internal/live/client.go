package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tweetlens/tweetlens/internal/cache"
	"github.com/tweetlens/tweetlens/internal/metrics"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/config"
	"github.com/tweetlens/tweetlens/pkg/logging"
	"github.com/tweetlens/tweetlens/pkg/telemetry"
)

// User is a live profile lookup result. Unlike archive records it
// carries the public counters the API reports.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	TweetCount     int       `json:"tweet_count"`
}

// Client fetches live account data over the v2 REST API to supplement
// a static archive. Responses are rate limited and optionally cached.
type Client struct {
	baseURL     string
	bearerToken string
	pageSize    int
	httpClient  *http.Client
	limiter     *rate.Limiter
	cache       *cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// New creates a live client. The cache may be nil; lookups then always
// hit the network.
func New(cfg *config.LiveConfig, c *cache.Cache) (*Client, error) {
	if cfg.BearerToken == "" {
		return nil, fmt.Errorf("live_bearer_token is required")
	}

	logger := logging.WithComponent("live-client")
	logger.Info("Live client initialized", zap.String("url", cfg.BaseURL))

	return &Client{
		baseURL:     cfg.BaseURL,
		bearerToken: cfg.BearerToken,
		pageSize:    cfg.PageSize,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cache:       c,
		cacheTTL:    cfg.CacheTTL,
		logger:      logger,
	}, nil
}

// get performs one rate-limited authorized request and returns the body
func (c *Client) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Accept", "application/json")

	metrics.LiveRequests.WithLabelValues(endpoint).Inc()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api status %d for %s", resp.StatusCode, endpoint)
	}
	return io.ReadAll(resp.Body)
}

// GetUserByUsername looks up one account by handle. Results are cached
// for the configured TTL.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	ctx, span := telemetry.StartSpan(ctx, "live.get_user")
	defer span.End()

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	key := cache.HashKey("user", username)
	if cached, err := c.cache.Get(ctx, key); err == nil {
		metrics.LiveCacheHits.Inc()
		var user User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	}

	u := fmt.Sprintf("%s/users/by/username/%s?user.fields=public_metrics,created_at,description",
		c.baseURL, url.PathEscape(username))
	body, err := c.get(ctx, "user_by_username", u)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}

	var raw struct {
		Data struct {
			ID            string    `json:"id"`
			Name          string    `json:"name"`
			Username      string    `json:"username"`
			Description   string    `json:"description"`
			CreatedAt     time.Time `json:"created_at"`
			PublicMetrics struct {
				FollowersCount int `json:"followers_count"`
				FollowingCount int `json:"following_count"`
				TweetCount     int `json:"tweet_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user response: %w", err)
	}
	if raw.Data.ID == "" {
		return nil, fmt.Errorf("user %s not found", username)
	}

	user := &User{
		ID:             raw.Data.ID,
		Username:       raw.Data.Username,
		Name:           raw.Data.Name,
		Description:    raw.Data.Description,
		CreatedAt:      raw.Data.CreatedAt,
		FollowersCount: raw.Data.PublicMetrics.FollowersCount,
		FollowingCount: raw.Data.PublicMetrics.FollowingCount,
		TweetCount:     raw.Data.PublicMetrics.TweetCount,
	}

	if encoded, err := json.Marshal(user); err == nil {
		if err := c.cache.Set(ctx, key, string(encoded), c.cacheTTL); err != nil && err != cache.ErrCacheDisabled {
			c.logger.Warn("Failed to cache user", zap.Error(err))
		}
	}
	return user, nil
}

// edgePage is one page of a followers/following listing
type edgePage struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// GetFollowers fetches the full follower edge list, following
// pagination tokens until the listing is exhausted.
func (c *Client) GetFollowers(ctx context.Context, userID string) ([]models.FollowEdge, error) {
	ctx, span := telemetry.StartSpan(ctx, "live.get_followers")
	defer span.End()
	return c.getEdges(ctx, "followers", userID)
}

// GetFollowing fetches the full following edge list
func (c *Client) GetFollowing(ctx context.Context, userID string) ([]models.FollowEdge, error) {
	ctx, span := telemetry.StartSpan(ctx, "live.get_following")
	defer span.End()
	return c.getEdges(ctx, "following", userID)
}

func (c *Client) getEdges(ctx context.Context, relation, userID string) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	token := ""
	for {
		u := fmt.Sprintf("%s/users/%s/%s?max_results=%d",
			c.baseURL, url.PathEscape(userID), relation, c.pageSize)
		if token != "" {
			u += "&pagination_token=" + url.QueryEscape(token)
		}

		body, err := c.get(ctx, relation, u)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s for %s: %w", relation, userID, err)
		}

		var page edgePage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s page: %w", relation, err)
		}
		for _, d := range page.Data {
			edges = append(edges, models.FollowEdge{AccountID: d.ID})
		}

		if page.Meta.NextToken == "" {
			break
		}
		token = page.Meta.NextToken
	}

	c.logger.Debug("Fetched edge list",
		zap.String("relation", relation), zap.Int("count", len(edges)))
	return edges, nil
}

// GetRecentTweets fetches the user's recent tweets across all pages
func (c *Client) GetRecentTweets(ctx context.Context, userID string) ([]models.Tweet, error) {
	ctx, span := telemetry.StartSpan(ctx, "live.get_recent_tweets")
	defer span.End()

	var tweets []models.Tweet
	token := ""
	for {
		u := fmt.Sprintf("%s/users/%s/tweets?max_results=%d&tweet.fields=created_at,public_metrics,referenced_tweets,entities",
			c.baseURL, url.PathEscape(userID), c.pageSize)
		if token != "" {
			u += "&pagination_token=" + url.QueryEscape(token)
		}

		body, err := c.get(ctx, "tweets", u)
		if err != nil {
			return nil, fmt.Errorf("failed to get tweets for %s: %w", userID, err)
		}

		var page struct {
			Data []struct {
				ID               string    `json:"id"`
				Text             string    `json:"text"`
				CreatedAt        time.Time `json:"created_at"`
				ReferencedTweets []struct {
					Type string `json:"type"`
					ID   string `json:"id"`
				} `json:"referenced_tweets"`
				PublicMetrics struct {
					LikeCount    int `json:"like_count"`
					RetweetCount int `json:"retweet_count"`
				} `json:"public_metrics"`
				Entities struct {
					Hashtags []struct {
						Tag string `json:"tag"`
					} `json:"hashtags"`
					Mentions []struct {
						Username string `json:"username"`
					} `json:"mentions"`
				} `json:"entities"`
			} `json:"data"`
			Meta struct {
				NextToken string `json:"next_token"`
			} `json:"meta"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tweets page: %w", err)
		}

		for _, d := range page.Data {
			t := models.Tweet{
				ID:            d.ID,
				AuthorID:      userID,
				FullText:      d.Text,
				CreatedAt:     d.CreatedAt,
				FavoriteCount: d.PublicMetrics.LikeCount,
				RetweetCount:  d.PublicMetrics.RetweetCount,
			}
			for _, ref := range d.ReferencedTweets {
				switch ref.Type {
				case "retweeted":
					t.RetweetOfID = ref.ID
				case "quoted":
					t.QuotedID = ref.ID
				case "replied_to":
					t.ReplyToID = ref.ID
				}
			}
			for _, h := range d.Entities.Hashtags {
				t.Hashtags = append(t.Hashtags, h.Tag)
			}
			for _, m := range d.Entities.Mentions {
				t.Mentions = append(t.Mentions, m.Username)
			}
			tweets = append(tweets, t)
		}

		if page.Meta.NextToken == "" {
			break
		}
		token = page.Meta.NextToken
	}

	return tweets, nil
}
