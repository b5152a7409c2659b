package archive

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/metrics"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/pkg/logging"
	"github.com/tweetlens/tweetlens/pkg/telemetry"
)

// Archive holds the typed collections loaded from one export.
// All collections are immutable snapshots for the remainder of a run.
type Archive struct {
	Account   *models.Account
	Profile   *models.Profile
	Followers []models.FollowEdge
	Following []models.FollowEdge
	Tweets    []models.Tweet
	Likes     []models.LikedTweet
	Blocks    []models.FollowEdge
	Mutes     []models.FollowEdge
}

// AccountID returns the archive owner's identifier, or empty when the
// account file was absent.
func (a *Archive) AccountID() string {
	if a.Account == nil {
		return ""
	}
	return a.Account.ID
}

// Export files use a wrapper assignment: window.YTD.<entity>.part<N> = [...]
var (
	wrapperRe = regexp.MustCompile(`(?s)window\.YTD\.\w+\.part\d+\s*=\s*(\[.*\])`)
	genericRe = regexp.MustCompile(`(?s)^[^=\[\]]{0,128}=\s*(\[.*\])\s*;?\s*$`)
)

// Loader reads a Twitter archive directory into typed collections
type Loader struct {
	root     string
	dataPath string
	logger   *zap.Logger
}

// NewLoader creates a loader for the archive rooted at path
func NewLoader(path string) *Loader {
	return &Loader{
		root:     path,
		dataPath: filepath.Join(path, "data"),
		logger:   logging.WithComponent("archive-loader"),
	}
}

// Load reads all entity files and returns the populated archive.
// Per-entity files load in parallel; each produces a disjoint output, and
// all loads complete before the archive is returned. A missing data
// directory is fatal; missing optional files yield empty collections;
// malformed files are skipped with a warning.
func (l *Loader) Load(ctx context.Context) (*Archive, error) {
	_, span := telemetry.StartSpan(ctx, "archive.load")
	defer span.End()
	start := time.Now()

	info, err := os.Stat(l.dataPath)
	if err != nil || !info.IsDir() {
		metrics.ArchiveLoadErrors.Inc()
		missing := &MissingArchiveError{Path: l.dataPath}
		telemetry.RecordError(span, missing)
		return nil, missing
	}

	ar := &Archive{}

	var wg sync.WaitGroup
	load := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	load(func() { ar.Followers = l.loadEdges("follower.js", "follower") })
	load(func() { ar.Following = l.loadEdges("following.js", "following") })
	load(func() { ar.Blocks = l.loadEdges("block.js", "blocking") })
	load(func() { ar.Mutes = l.loadEdges("mute.js", "muting") })
	load(func() { ar.Likes = l.loadLikes() })
	load(func() {
		ar.Account = l.loadAccount()
		ar.Profile = l.loadProfile()
	})
	wg.Wait()

	// Tweets depend on the account ID for authorship, so they load after
	// the account file has been read.
	ar.Tweets = l.loadTweets(ar.AccountID())

	metrics.ArchiveLoads.Inc()
	metrics.ObserveArchiveLoad(start)

	l.logger.Info("Archive loaded",
		zap.String("path", l.root),
		zap.Int("followers", len(ar.Followers)),
		zap.Int("following", len(ar.Following)),
		zap.Int("tweets", len(ar.Tweets)),
		zap.Int("likes", len(ar.Likes)))

	return ar, nil
}

// readArray reads an entity file and returns the JSON array payload.
// ok is false when the file is absent or malformed; malformed files are
// reported as a warning, never as a fatal error.
func (l *Loader) readArray(name string) ([]byte, bool) {
	path := filepath.Join(l.dataPath, name)
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.warn(&MalformedRecordError{File: path, Err: err})
		}
		return nil, false
	}

	if m := wrapperRe.FindSubmatch(content); m != nil {
		return m[1], true
	}
	if m := genericRe.FindSubmatch(content); m != nil {
		return m[1], true
	}

	l.warn(&MalformedRecordError{File: path, Err: errNoArrayPayload})
	return nil, false
}

var errNoArrayPayload = &payloadError{}

type payloadError struct{}

func (*payloadError) Error() string { return "no JSON array payload after assignment prefix" }

func (l *Loader) warn(err *MalformedRecordError) {
	metrics.ArchiveSkippedFiles.Inc()
	l.logger.Warn("Skipping archive file", zap.String("file", err.File), zap.Error(err.Err))
}

func (l *Loader) loadEdges(name, wrap string) []models.FollowEdge {
	data, ok := l.readArray(name)
	if !ok {
		return []models.FollowEdge{}
	}
	edges, err := decodeEdges(data, wrap)
	if err != nil {
		l.warn(&MalformedRecordError{File: filepath.Join(l.dataPath, name), Err: err})
		return []models.FollowEdge{}
	}
	return edges
}

func (l *Loader) loadTweets(authorID string) []models.Tweet {
	data, ok := l.readArray("tweets.js")
	if !ok {
		return []models.Tweet{}
	}
	tweets, err := decodeTweets(data, authorID)
	if err != nil {
		l.warn(&MalformedRecordError{File: filepath.Join(l.dataPath, "tweets.js"), Err: err})
		return []models.Tweet{}
	}
	return tweets
}

func (l *Loader) loadLikes() []models.LikedTweet {
	data, ok := l.readArray("like.js")
	if !ok {
		return []models.LikedTweet{}
	}
	likes, err := decodeLikes(data)
	if err != nil {
		l.warn(&MalformedRecordError{File: filepath.Join(l.dataPath, "like.js"), Err: err})
		return []models.LikedTweet{}
	}
	return likes
}

func (l *Loader) loadAccount() *models.Account {
	data, ok := l.readArray("account.js")
	if !ok {
		return nil
	}
	acct, err := decodeAccount(data)
	if err != nil {
		l.warn(&MalformedRecordError{File: filepath.Join(l.dataPath, "account.js"), Err: err})
		return nil
	}
	return acct
}

func (l *Loader) loadProfile() *models.Profile {
	data, ok := l.readArray("profile.js")
	if !ok {
		return nil
	}
	prof, err := decodeProfile(data)
	if err != nil {
		l.warn(&MalformedRecordError{File: filepath.Join(l.dataPath, "profile.js"), Err: err})
		return nil
	}
	return prof
}
