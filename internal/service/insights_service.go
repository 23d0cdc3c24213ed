package service

import (
	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/dataset"
	"github.com/imgoedu/imgo-backend/internal/insights"
)

// InstitutionInsight is the per-institution indicator summary.
type InstitutionInsight struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Programs int     `json:"programs"`
	Score    float64 `json:"score"`
	Label    string  `json:"label"`
}

// Insights bundles indicator scores with the segment price benchmarks.
type Insights struct {
	Institutions []InstitutionInsight `json:"institutions"`
	Benchmarks   map[string]float64   `json:"benchmarks"`
}

// InsightsService computes presentation heuristics over the dataset artifact.
// The artifact is re-read per request; it only changes when a pipeline run
// rewrites it.
type InsightsService struct {
	datasetFile string
	log         zerolog.Logger
}

func NewInsightsService(datasetFile string, log zerolog.Logger) *InsightsService {
	return &InsightsService{
		datasetFile: datasetFile,
		log:         log.With().Str("component", "insights_service").Logger(),
	}
}

// Compute scores every institution in the dataset.
func (s *InsightsService) Compute() (Insights, error) {
	universities, err := dataset.Load(s.datasetFile)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.datasetFile).Msg("dataset load failed")
		return Insights{}, err
	}

	out := Insights{
		Institutions: make([]InstitutionInsight, 0, len(universities)),
		Benchmarks:   insights.PriceBenchmarks(universities),
	}

	for _, u := range universities {
		score := insights.IndicatorScore(u)
		out.Institutions = append(out.Institutions, InstitutionInsight{
			ID:       u.ID,
			Name:     u.Name,
			Type:     u.Type,
			Programs: len(u.Programs),
			Score:    score,
			Label:    insights.RatingLabel(score),
		})
	}

	return out, nil
}
