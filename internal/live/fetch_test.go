package live

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/tweetlens/tweetlens/internal/analyzer"
	"github.com/tweetlens/tweetlens/pkg/config"
)

func TestFetchArchive(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/tester", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "42", "username": "tester", "name": "Tester",
			"description": "building things",
			"public_metrics": {"followers_count": 2, "following_count": 2, "tweet_count": 1}}}`)
	})
	mux.HandleFunc("/users/42/followers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "A"}, {"id": "B"}], "meta": {}}`)
	})
	mux.HandleFunc("/users/42/following", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "B"}, {"id": "C"}], "meta": {}}`)
	})
	mux.HandleFunc("/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"id": "1", "text": "hello #go", "created_at": "2026-01-05T09:00:00Z",
			 "public_metrics": {"like_count": 3, "retweet_count": 1},
			 "entities": {"hashtags": [{"tag": "go"}]}}
		], "meta": {}}`)
	})
	c := testClient(t, mux)

	ar, err := c.FetchArchive(context.Background(), "tester")
	if err != nil {
		t.Fatalf("FetchArchive failed: %v", err)
	}

	if ar.AccountID() != "42" || ar.Account.Username != "tester" {
		t.Errorf("Unexpected account: %+v", ar.Account)
	}
	if ar.Profile == nil || ar.Profile.Bio != "building things" {
		t.Errorf("Unexpected profile: %+v", ar.Profile)
	}
	if len(ar.Followers) != 2 || len(ar.Following) != 2 || len(ar.Tweets) != 1 {
		t.Errorf("Unexpected collection sizes: followers=%d following=%d tweets=%d",
			len(ar.Followers), len(ar.Following), len(ar.Tweets))
	}
	if ar.Likes == nil || ar.Blocks == nil || ar.Mutes == nil {
		t.Error("Absent collections should be empty, not nil")
	}

	// The assembled archive feeds the same analysis pipeline as a loaded one
	m := analyzer.BuildMetrics(ar, config.ScoringConfig{
		EngagementCap: 50, RatioWeight: 20, RatioCap: 30,
		MutualDivisor: 10, MutualWeight: 20, MutualCap: 20,
	}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if m.AccountID != "42" || m.FollowerCount != 2 || m.FollowingCount != 2 {
		t.Errorf("Unexpected metrics counts: %+v", m)
	}
	if m.MutualCount != 1 {
		t.Errorf("Expected 1 mutual connection, got %d", m.MutualCount)
	}
	if m.TweetCount != 1 || len(m.TopHashtags) != 1 || m.TopHashtags[0].Tag != "go" {
		t.Errorf("Unexpected content stats: %+v", m)
	}
}

func TestFetchArchiveUnknownUser(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {}}`)
	}))

	if _, err := c.FetchArchive(context.Background(), "ghost"); err == nil {
		t.Fatal("Expected an error for an unknown account")
	}
}
