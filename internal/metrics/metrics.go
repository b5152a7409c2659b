package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ArchiveLoads counts completed archive loads
	ArchiveLoads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetlens_archive_loads_total",
		Help: "Total archive loads",
	})
	// ArchiveLoadErrors counts fatal archive load failures
	ArchiveLoadErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetlens_archive_load_errors_total",
		Help: "Total fatal archive load failures",
	})
	// ArchiveSkippedFiles counts malformed files skipped with a warning
	ArchiveSkippedFiles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetlens_archive_skipped_files_total",
		Help: "Total malformed archive files skipped",
	})
	// ArchiveLoadDuration observes archive load durations
	ArchiveLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tweetlens_archive_load_duration_seconds",
		Help:    "Archive load duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	// LiveRequests counts remote data-fetch requests per endpoint
	LiveRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweetlens_live_requests_total",
		Help: "Total live API requests",
	}, []string{"endpoint"})
	// LiveCacheHits counts live responses served from cache
	LiveCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweetlens_live_cache_hits_total",
		Help: "Total live API cache hits",
	})
)

func init() {
	prometheus.MustRegister(
		ArchiveLoads,
		ArchiveLoadErrors,
		ArchiveSkippedFiles,
		ArchiveLoadDuration,
		LiveRequests,
		LiveCacheHits,
	)
}

// ObserveArchiveLoad records one load duration
func ObserveArchiveLoad(start time.Time) {
	ArchiveLoadDuration.Observe(time.Since(start).Seconds())
}
