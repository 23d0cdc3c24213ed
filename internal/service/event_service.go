package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/store"
)

// EventService records analytics events into the capped events list.
type EventService struct {
	store store.Store
	log   zerolog.Logger
}

func NewEventService(st store.Store, log zerolog.Logger) *EventService {
	return &EventService{
		store: st,
		log:   log.With().Str("component", "event_service").Logger(),
	}
}

// Record appends an event with a generated id and server timestamp. A failed
// store write is logged but not surfaced: persistence is best effort here.
func (s *EventService) Record(ctx context.Context, req model.CreateEventRequest) model.Event {
	event := model.Event{
		ID:        uuid.New().String(),
		TS:        time.Now().UTC().Format(time.RFC3339),
		SessionID: req.SessionID,
		Name:      req.Name,
		Props:     req.Props,
	}
	if event.Props == nil {
		event.Props = map[string]any{}
	}

	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return event
	}

	db.Events = store.CapTail(append(db.Events, event), store.MaxEvents)

	if err := s.store.Write(ctx, db); err != nil {
		s.log.Error().Err(err).Msg("store write failed")
	}
	return event
}
