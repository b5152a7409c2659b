package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/logging"
)

// Exporter writes archive collections and derived metrics to files
// under one output directory. Column order and header names are stable
// across runs; downstream tools depend on column position.
type Exporter struct {
	outDir string
	logger *zap.Logger
}

// NewExporter creates an exporter rooted at outDir
func NewExporter(outDir string) *Exporter {
	return &Exporter{
		outDir: outDir,
		logger: logging.WithComponent("exporter"),
	}
}

// ExportAll writes every CSV file plus insights.json for one archive.
// Empty collections produce header-only files, never errors.
func (e *Exporter) ExportAll(ar *archive.Archive, m *models.Metrics) error {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	followers := models.EdgeSet(ar.Followers)
	following := models.EdgeSet(ar.Following)

	steps := []func() error{
		func() error { return e.exportEdges("followers.csv", ar.Followers) },
		func() error { return e.exportEdges("following.csv", ar.Following) },
		func() error { return e.exportMutual(followers.Intersect(following)) },
		func() error {
			return e.exportNotes("not_followed_back.csv",
				following.Diff(followers), "you follow them, they don't follow back")
		},
		func() error {
			return e.exportNotes("followers_not_following_back.csv",
				followers.Diff(following), "they follow you, you don't follow back")
		},
		func() error { return e.exportTweets(ar.Tweets) },
		func() error { return e.exportLikes(ar.Likes) },
		func() error { return e.ExportInsights(m) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	e.logger.Info("Export complete", zap.String("dir", e.outDir))
	return nil
}

func (e *Exporter) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(e.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}

	e.logger.Debug("Wrote export file",
		zap.String("file", path), zap.Int("rows", len(rows)))
	return nil
}

func (e *Exporter) exportEdges(name string, edges []models.FollowEdge) error {
	rows := make([][]string, 0, len(edges))
	for _, edge := range edges {
		rows = append(rows, []string{edge.AccountID, edge.UserLink})
	}
	return e.writeCSV(name, []string{"account_id", "user_link"}, rows)
}

func (e *Exporter) exportMutual(mutual models.IDSet) error {
	rows := make([][]string, 0, len(mutual))
	for _, id := range sortedIDs(mutual) {
		rows = append(rows, []string{id, "mutual"})
	}
	return e.writeCSV("mutual_connections.csv",
		[]string{"account_id", "relationship"}, rows)
}

func (e *Exporter) exportNotes(name string, ids models.IDSet, note string) error {
	rows := make([][]string, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		rows = append(rows, []string{id, note})
	}
	return e.writeCSV(name, []string{"account_id", "note"}, rows)
}

func (e *Exporter) exportTweets(tweets []models.Tweet) error {
	header := []string{
		"tweet_id", "created_at", "full_text",
		"retweet_count", "favorite_count", "type", "hashtags", "mentions",
	}
	rows := make([][]string, 0, len(tweets))
	for i := range tweets {
		t := &tweets[i]
		createdAt := ""
		if t.HasTimestamp() {
			createdAt = t.CreatedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			t.ID,
			createdAt,
			t.FullText,
			strconv.Itoa(t.RetweetCount),
			strconv.Itoa(t.FavoriteCount),
			t.Kind().String(),
			strings.Join(t.Hashtags, " "),
			strings.Join(t.Mentions, " "),
		})
	}
	return e.writeCSV("tweets.csv", header, rows)
}

func (e *Exporter) exportLikes(likes []models.LikedTweet) error {
	rows := make([][]string, 0, len(likes))
	for _, like := range likes {
		rows = append(rows, []string{like.TweetID, like.FullText, like.ExpandedURL})
	}
	return e.writeCSV("likes.csv", []string{"tweet_id", "full_text", "url"}, rows)
}

// sortedIDs returns set members in lexicographic order so set-derived
// files are deterministic across runs.
func sortedIDs(s models.IDSet) []string {
	ids := s.Values()
	sort.Strings(ids)
	return ids
}
