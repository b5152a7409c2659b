package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/db"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/config"
)

func testRouter(t *testing.T) (*gin.Engine, *Router) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.New(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, "ERROR")
	if err != nil {
		t.Fatalf("Opening in-memory store: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ar := &archive.Archive{
		Account:   &models.Account{ID: "42", Username: "tester"},
		Followers: []models.FollowEdge{{AccountID: "A"}, {AccountID: "B"}},
		Following: []models.FollowEdge{{AccountID: "B"}},
		Tweets: []models.Tweet{
			{ID: "1", FullText: "hello #go", Hashtags: []string{"go"},
				CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)},
		},
	}
	m := &models.Metrics{
		AccountID:           "42",
		Username:            "tester",
		GeneratedAt:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		FollowerCount:       2,
		FollowingCount:      1,
		MutualCount:         1,
		EngagementRate:      100,
		NetworkQualityScore: 95,
		TweetCount:          1,
		PeakHour:            9,
		PeakDay:             1,
	}

	router := NewRouter(ar, m, database, nil)
	engine := gin.New()
	router.SetupRoutes(engine)
	return engine, router
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	engine, _ := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if body["status"] != "OK" || body["service"] != "tweetlens-api" {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestMetricsHandler(t *testing.T) {
	engine, _ := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/api/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var m models.Metrics
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if m.AccountID != "42" || m.NetworkQualityScore != 95 {
		t.Errorf("Unexpected metrics: %+v", m)
	}
}

func TestHashtagsHandler(t *testing.T) {
	engine, _ := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/api/hashtags?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Hashtags []models.TagCount `json:"hashtags"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if len(body.Hashtags) != 1 || body.Hashtags[0].Tag != "go" {
		t.Errorf("Unexpected hashtags: %v", body.Hashtags)
	}
}

func TestActivityHandler(t *testing.T) {
	engine, _ := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/api/activity", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		PeakHour    int    `json:"peak_hour"`
		PeakDayName string `json:"peak_day_name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if body.PeakHour != 9 || body.PeakDayName != "Monday" {
		t.Errorf("Unexpected activity body: %+v", body)
	}
}

func TestSnapshotAndGrowthFlow(t *testing.T) {
	engine, router := testRouter(t)

	// No snapshots yet
	w := doRequest(t, engine, http.MethodGet, "/api/growth", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 before snapshots exist, got %d", w.Code)
	}

	w = doRequest(t, engine, http.MethodPost, "/api/snapshots", []byte(`{"label": "first"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A second snapshot with a later timestamp and more followers
	router.metrics.GeneratedAt = router.metrics.GeneratedAt.Add(24 * time.Hour)
	router.metrics.FollowerCount = 5
	w = doRequest(t, engine, http.MethodPost, "/api/snapshots", []byte(`{"label": "second"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, engine, http.MethodGet, "/api/growth", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Report struct {
			Followers struct {
				Change float64 `json:"change"`
			} `json:"followers"`
			OldLabel string `json:"old_label"`
			NewLabel string `json:"new_label"`
		} `json:"report"`
		Advice []string `json:"advice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if body.Report.OldLabel != "first" || body.Report.NewLabel != "second" {
		t.Errorf("Expected first/second labels, got %+v", body.Report)
	}
	if body.Report.Followers.Change != 3 {
		t.Errorf("Expected follower change 3, got %f", body.Report.Followers.Change)
	}
	if len(body.Advice) == 0 {
		t.Error("Expected at least one advice line")
	}
}

func TestListSnapshotsHandler(t *testing.T) {
	engine, router := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/api/snapshots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var empty struct {
		Snapshots []json.RawMessage `json:"snapshots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if len(empty.Snapshots) != 0 {
		t.Errorf("Expected no snapshots yet, got %d", len(empty.Snapshots))
	}

	doRequest(t, engine, http.MethodPost, "/api/snapshots", []byte(`{"label": "first"}`))
	router.metrics.GeneratedAt = router.metrics.GeneratedAt.Add(24 * time.Hour)
	doRequest(t, engine, http.MethodPost, "/api/snapshots", []byte(`{"label": "second"}`))

	w = doRequest(t, engine, http.MethodGet, "/api/snapshots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Snapshots []struct {
			Label         string `json:"label"`
			FollowerCount int    `json:"follower_count"`
		} `json:"snapshots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if len(body.Snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(body.Snapshots))
	}
	// Oldest first
	if body.Snapshots[0].Label != "first" || body.Snapshots[1].Label != "second" {
		t.Errorf("Expected chronological order, got %+v", body.Snapshots)
	}
	if body.Snapshots[0].FollowerCount != 2 {
		t.Errorf("Expected follower count 2, got %d", body.Snapshots[0].FollowerCount)
	}
}

func TestRecommendationsHandler(t *testing.T) {
	engine, _ := testRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/api/recommendations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Parsing response: %v", err)
	}
	if body.Score != 95 {
		t.Errorf("Expected score 95, got %d", body.Score)
	}
}
