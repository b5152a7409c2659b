package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tweetlens/tweetlens/internal/models"
	"github.com/tweetlens/tweetlens/internal/scoring"
)

// Insights is the insights.json document: the full metrics snapshot
// plus the recommendations that fired for it.
type Insights struct {
	Metrics         *models.Metrics          `json:"metrics"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
}

// ExportInsights writes insights.json for one metrics snapshot.
// Serialization is idempotent: re-parsing the file yields the same
// scalar values.
func (e *Exporter) ExportInsights(m *models.Metrics) error {
	doc := Insights{
		Metrics:         m,
		Recommendations: scoring.Recommend(m),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding insights: %w", err)
	}

	path := filepath.Join(e.outDir, "insights.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing insights: %w", err)
	}

	e.logger.Debug("Wrote export file", zap.String("file", path))
	return nil
}
