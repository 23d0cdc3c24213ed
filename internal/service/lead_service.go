package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/store"
)

// StageLead is the pipeline stage every auto-created agreement starts in.
const StageLead = "Lead"

// LeadService captures contact requests and mirrors each one into the CRM
// pipeline.
type LeadService struct {
	store store.Store
	log   zerolog.Logger
}

func NewLeadService(st store.Store, log zerolog.Logger) *LeadService {
	return &LeadService{
		store: st,
		log:   log.With().Str("component", "lead_service").Logger(),
	}
}

// Submit appends the lead and auto-creates a pipeline record for it. Store
// write failures are logged and swallowed (best-effort demo persistence).
func (s *LeadService) Submit(ctx context.Context, req model.CreateLeadRequest) model.Lead {
	now := time.Now().UTC().Format(time.RFC3339)

	lead := model.Lead{
		ID:           uuid.New().String(),
		TS:           now,
		SessionID:    req.SessionID,
		UniversityID: req.UniversityID,
		ProgramID:    req.ProgramID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		Consent:      req.Consent,
	}

	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return lead
	}

	db.Leads = store.CapTail(append(db.Leads, lead), store.MaxLeads)

	db.Agreements = store.CapTail(append(db.Agreements, model.Agreement{
		ID:                 uuid.New().String(),
		TS:                 now,
		UniversityID:       lead.UniversityID,
		Stage:              StageLead,
		ExpectedMonthlyCOP: 0,
		Notes:              "Auto-creado por lead",
	}), store.MaxAgreements)

	if err := s.store.Write(ctx, db); err != nil {
		s.log.Error().Err(err).Msg("store write failed")
	}
	return lead
}

// List returns all stored leads, most recent first.
func (s *LeadService) List(ctx context.Context) ([]model.Lead, error) {
	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return nil, err
	}
	return reversed(db.Leads), nil
}

// reversed copies a slice in reverse order.
func reversed[T any](list []T) []T {
	out := make([]T, len(list))
	for i, v := range list {
		out[len(list)-1-i] = v
	}
	return out
}
