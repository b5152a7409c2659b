package live

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/telemetry"
)

// FetchArchive assembles an archive-shaped view of one account from the
// live API. The analyzers run unchanged over the result; collections the
// API does not expose (likes, blocks, mutes) come back empty.
func (c *Client) FetchArchive(ctx context.Context, username string) (*archive.Archive, error) {
	ctx, span := telemetry.StartSpan(ctx, "live.fetch_archive")
	defer span.End()

	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	followers, err := c.GetFollowers(ctx, user.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("fetching followers: %w", err)
	}
	following, err := c.GetFollowing(ctx, user.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("fetching following: %w", err)
	}
	tweets, err := c.GetRecentTweets(ctx, user.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("fetching tweets: %w", err)
	}

	c.logger.Info("Live account fetched",
		zap.String("username", user.Username),
		zap.Int("followers", len(followers)),
		zap.Int("following", len(following)),
		zap.Int("tweets", len(tweets)))

	return &archive.Archive{
		Account: &models.Account{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.Name,
			CreatedAt:   user.CreatedAt,
		},
		Profile:   &models.Profile{Bio: user.Description},
		Followers: followers,
		Following: following,
		Tweets:    tweets,
		Likes:     []models.LikedTweet{},
		Blocks:    []models.FollowEdge{},
		Mutes:     []models.FollowEdge{},
	}, nil
}
