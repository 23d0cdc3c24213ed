package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/store"
)

// EventPageView is the event name counted as a page view.
const EventPageView = "page_view"

// FunnelSteps is the ordered conversion funnel computed by the metrics
// endpoint. Each step counts distinct sessions that emitted the event.
var FunnelSteps = []string{"search", "open_institution", "open_program", "lead_submit"}

// lastEventsWindow bounds the raw event tail returned for inspection.
const lastEventsWindow = 200

// Metrics is the aggregate snapshot served to the admin dashboard.
type Metrics struct {
	Totals     MetricsTotals `json:"totals"`
	Funnel     []FunnelStep  `json:"funnel"`
	LastEvents []model.Event `json:"lastEvents"`
}

type MetricsTotals struct {
	UniqueUsers int `json:"uniqueUsers"`
	PageViews   int `json:"pageViews"`
	Leads       int `json:"leads"`
	Agreements  int `json:"agreements"`
}

type FunnelStep struct {
	Step  string `json:"step"`
	Users int    `json:"users"`
}

// MetricsService aggregates the stored events into dashboard numbers.
type MetricsService struct {
	store store.Store
	log   zerolog.Logger
}

func NewMetricsService(st store.Store, log zerolog.Logger) *MetricsService {
	return &MetricsService{
		store: st,
		log:   log.With().Str("component", "metrics_service").Logger(),
	}
}

// Compute aggregates the full event list in one pass per measure. The store
// is small by construction (capped lists), so no incremental state is kept.
func (s *MetricsService) Compute(ctx context.Context) (Metrics, error) {
	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return Metrics{}, err
	}

	sessions := make(map[string]struct{})
	pageViews := 0
	stepSessions := make(map[string]map[string]struct{}, len(FunnelSteps))
	for _, step := range FunnelSteps {
		stepSessions[step] = make(map[string]struct{})
	}

	for _, e := range db.Events {
		sessions[e.SessionID] = struct{}{}
		if e.Name == EventPageView {
			pageViews++
		}
		if users, ok := stepSessions[e.Name]; ok {
			users[e.SessionID] = struct{}{}
		}
	}

	funnel := make([]FunnelStep, 0, len(FunnelSteps))
	for _, step := range FunnelSteps {
		funnel = append(funnel, FunnelStep{Step: step, Users: len(stepSessions[step])})
	}

	tail := db.Events
	if len(tail) > lastEventsWindow {
		tail = tail[len(tail)-lastEventsWindow:]
	}

	return Metrics{
		Totals: MetricsTotals{
			UniqueUsers: len(sessions),
			PageViews:   pageViews,
			Leads:       len(db.Leads),
			Agreements:  len(db.Agreements),
		},
		Funnel:     funnel,
		LastEvents: reversed(tail),
	}, nil
}
