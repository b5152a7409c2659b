package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is a persisted metrics snapshot for growth tracking.
// Scalar aggregates are stored in columns; identifier sets and the full
// metrics document are stored as JSON text.
type Snapshot struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID string    `gorm:"type:varchar(32);not null;index:tl_snapshots_account_idx;column:account_id"`
	Label     string    `gorm:"type:varchar(64);not null;default:'';column:label"`
	TakenAt   time.Time `gorm:"not null;column:taken_at"`

	FollowerCount       int     `gorm:"not null;default:0;column:follower_count"`
	FollowingCount      int     `gorm:"not null;default:0;column:following_count"`
	MutualCount         int     `gorm:"not null;default:0;column:mutual_count"`
	TweetCount          int     `gorm:"not null;default:0;column:tweet_count"`
	LikeCount           int     `gorm:"not null;default:0;column:like_count"`
	FollowerRatio       float64 `gorm:"not null;default:0;column:follower_ratio"`
	EngagementRate      float64 `gorm:"not null;default:0;column:engagement_rate"`
	NetworkQualityScore int     `gorm:"not null;default:0;column:network_quality_score"`

	FollowerIDs  string `gorm:"type:text;column:follower_ids"`
	FollowingIDs string `gorm:"type:text;column:following_ids"`
	MetricsJSON  string `gorm:"type:text;column:metrics_json"`
}

// TableName specifies the table name for Snapshot
func (Snapshot) TableName() string {
	return "tl_snapshots"
}

// NewSnapshot builds a persistable snapshot from computed metrics and the
// follower/following identifier sets it was derived from.
func NewSnapshot(m *Metrics, followers, following IDSet, label string) (*Snapshot, error) {
	followerIDs, err := json.Marshal(followers.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to encode follower ids: %w", err)
	}
	followingIDs, err := json.Marshal(following.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to encode following ids: %w", err)
	}
	metricsJSON, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metrics: %w", err)
	}

	return &Snapshot{
		AccountID:           m.AccountID,
		Label:               label,
		TakenAt:             m.GeneratedAt,
		FollowerCount:       m.FollowerCount,
		FollowingCount:      m.FollowingCount,
		MutualCount:         m.MutualCount,
		TweetCount:          m.TweetCount,
		LikeCount:           m.LikeCount,
		FollowerRatio:       m.FollowerRatio,
		EngagementRate:      m.EngagementRate,
		NetworkQualityScore: m.NetworkQualityScore,
		FollowerIDs:         string(followerIDs),
		FollowingIDs:        string(followingIDs),
		MetricsJSON:         string(metricsJSON),
	}, nil
}

// FollowerSet decodes the stored follower identifier set
func (s *Snapshot) FollowerSet() (IDSet, error) {
	return decodeIDSet(s.FollowerIDs)
}

// FollowingSet decodes the stored following identifier set
func (s *Snapshot) FollowingSet() (IDSet, error) {
	return decodeIDSet(s.FollowingIDs)
}

// Metrics decodes the stored full metrics document
func (s *Snapshot) Metrics() (*Metrics, error) {
	var m Metrics
	if err := json.Unmarshal([]byte(s.MetricsJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return &m, nil
}

func decodeIDSet(raw string) (IDSet, error) {
	if raw == "" {
		return NewIDSet(), nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode id set: %w", err)
	}
	return NewIDSet(ids...), nil
}
