package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/analyzer"
	"github.com/tweetlens/tweetlens/internal/archive"
	"github.com/tweetlens/tweetlens/internal/cache"
	"github.com/tweetlens/tweetlens/internal/db"
	"github.com/tweetlens/tweetlens/internal/export"
	"github.com/tweetlens/tweetlens/internal/growth"
	"github.com/tweetlens/tweetlens/internal/live"
	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
	"github.com/tweetlens/tweetlens/pkg/config"
	"github.com/tweetlens/tweetlens/pkg/logging"
	"github.com/tweetlens/tweetlens/pkg/telemetry"
)

const usage = `Usage: tweetlens <command> [flags]

Commands:
  report   <archive-dir>             print the full analytics report
  export   [-out dir] <archive-dir>  write CSV and JSON exports
  compare  <old-dir> <new-dir>       compare two archives of one account
  snapshot [-label l] <archive-dir>  persist a metrics snapshot
  goals    [-followers n] [-engagement pct] <archive-dir>
                                     track progress toward targets
  live     <username>                analyze an account over the live API
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load configuration: %v", err)
	}
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fatal("Failed to initialize logger: %v", err)
	}
	defer logging.GetLogger().Sync()

	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logging.GetLogger().Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	switch command {
	case "report":
		runReport(ctx, cfg, args)
	case "export":
		runExport(ctx, cfg, args)
	case "compare":
		runCompare(ctx, cfg, args)
	case "snapshot":
		runSnapshot(ctx, cfg, args)
	case "goals":
		runGoals(ctx, cfg, args)
	case "live":
		runLive(ctx, cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", command, usage)
		os.Exit(2)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// analyze loads one archive and computes its metrics snapshot
func analyze(ctx context.Context, cfg *config.Config, path string) (*archive.Archive, *models.Metrics) {
	ar, err := archive.NewLoader(path).Load(ctx)
	if err != nil {
		fatal("%v", err)
	}
	return ar, analyzer.BuildMetrics(ar, cfg.Scoring, time.Now().UTC())
}

func archiveArg(fs *flag.FlagSet, args []string, name string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fatal("%s requires an archive directory argument", name)
	}
	return fs.Arg(0)
}

func runReport(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	path := archiveArg(fs, args, "report")

	_, m := analyze(ctx, cfg, path)
	export.RenderReport(os.Stdout, m, scoring.Recommend(m))
}

func runExport(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", cfg.Export.OutputDir, "output directory")
	path := archiveArg(fs, args, "export")

	ar, m := analyze(ctx, cfg, path)
	if err := export.NewExporter(*out).ExportAll(ar, m); err != nil {
		fatal("Export failed: %v", err)
	}
	fmt.Printf("Exported archive data to %s\n", *out)
}

func runCompare(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 2 {
		fatal("compare requires old and new archive directories")
	}

	oldAr, oldMetrics := analyze(ctx, cfg, fs.Arg(0))
	newAr, newMetrics := analyze(ctx, cfg, fs.Arg(1))

	oldSnap, err := models.NewSnapshot(oldMetrics,
		models.EdgeSet(oldAr.Followers), models.EdgeSet(oldAr.Following), "old")
	if err != nil {
		fatal("%v", err)
	}
	newSnap, err := models.NewSnapshot(newMetrics,
		models.EdgeSet(newAr.Followers), models.EdgeSet(newAr.Following), "new")
	if err != nil {
		fatal("%v", err)
	}

	report, err := growth.Compare(oldSnap, newSnap)
	if err != nil {
		fatal("%v", err)
	}

	printDelta := func(name string, d growth.Delta) {
		fmt.Printf("%-18s %.0f -> %.0f (%+.0f, %+.1f%%)\n",
			name+":", d.Old, d.New, d.Change, d.Percent)
	}
	fmt.Println("Growth comparison")
	printDelta("Followers", report.Followers)
	printDelta("Following", report.Following)
	printDelta("Mutual", report.Mutual)
	printDelta("Tweets", report.Tweets)
	printDelta("Likes", report.Likes)
	fmt.Printf("New followers: %d, lost followers: %d (net %+d)\n",
		len(report.NewFollowers), len(report.LostFollowers), report.NetFollowerChange())
	fmt.Printf("New following: %d, unfollowed: %d\n",
		len(report.NewFollowing), len(report.Unfollowed))
	for _, line := range growth.Advice(report) {
		fmt.Println("- " + line)
	}
}

func runLive(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("live", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fatal("live requires a username argument")
	}

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		fatal("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	client, err := live.New(&cfg.Live, redisCache)
	if err != nil {
		fatal("%v", err)
	}

	ar, err := client.FetchArchive(ctx, fs.Arg(0))
	if err != nil {
		fatal("Live fetch failed: %v", err)
	}

	m := analyzer.BuildMetrics(ar, cfg.Scoring, time.Now().UTC())
	export.RenderReport(os.Stdout, m, scoring.Recommend(m))
}

func runSnapshot(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	label := fs.String("label", "", "snapshot label")
	path := archiveArg(fs, args, "snapshot")

	ar, m := analyze(ctx, cfg, path)

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		fatal("Failed to open snapshot store: %v", err)
	}
	defer database.Close()

	repo := db.NewSnapshotRepository(database)
	prev, err := repo.Latest(ctx, m.AccountID)
	if err != nil {
		fatal("Failed to read previous snapshot: %v", err)
	}

	snap, err := models.NewSnapshot(m,
		models.EdgeSet(ar.Followers), models.EdgeSet(ar.Following), *label)
	if err != nil {
		fatal("%v", err)
	}
	if err := repo.Save(ctx, snap); err != nil {
		fatal("Failed to save snapshot: %v", err)
	}
	fmt.Printf("Saved snapshot %d for account %s\n", snap.ID, snap.AccountID)
	if prev != nil {
		fmt.Printf("Since %s: followers %+d, following %+d, mutual %+d\n",
			prev.TakenAt.Format("2006-01-02"),
			snap.FollowerCount-prev.FollowerCount,
			snap.FollowingCount-prev.FollowingCount,
			snap.MutualCount-prev.MutualCount)
	}
}

func runGoals(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("goals", flag.ExitOnError)
	followers := fs.Int("followers", 0, "target follower count")
	engagement := fs.Float64("engagement", 0, "target engagement rate percent")
	path := archiveArg(fs, args, "goals")

	_, m := analyze(ctx, cfg, path)

	progress := growth.TrackGoals(m, growth.Goal{
		TargetFollowers:  *followers,
		TargetEngagement: *engagement,
	})
	if len(progress) == 0 {
		fmt.Println("No targets set; use -followers and/or -engagement")
		return
	}

	fmt.Printf("Current: %d followers, %.1f%% engagement\n",
		m.FollowerCount, m.EngagementRate)
	for _, p := range progress {
		fmt.Printf("%s goal %.0f: current %.1f, remaining %.1f (%.1f%% there)\n",
			p.Metric, p.Target, p.Current, p.Remaining, p.Percent)
		if p.MutualNeeded > 0 {
			fmt.Printf("  need %d more mutual connections\n", p.MutualNeeded)
		}
	}
}
