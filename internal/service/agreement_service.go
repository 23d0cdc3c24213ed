package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/store"
)

// AgreementService manages the CRM pipeline records.
type AgreementService struct {
	store store.Store
	log   zerolog.Logger
}

func NewAgreementService(st store.Store, log zerolog.Logger) *AgreementService {
	return &AgreementService{
		store: st,
		log:   log.With().Str("component", "agreement_service").Logger(),
	}
}

// Create appends a pipeline record; stage defaults to Lead.
func (s *AgreementService) Create(ctx context.Context, req model.CreateAgreementRequest) model.Agreement {
	stage := req.Stage
	if stage == "" {
		stage = StageLead
	}

	agreement := model.Agreement{
		ID:                 uuid.New().String(),
		TS:                 time.Now().UTC().Format(time.RFC3339),
		UniversityID:       req.UniversityID,
		Stage:              stage,
		ExpectedMonthlyCOP: req.ExpectedMonthlyCOP,
		Notes:              req.Notes,
	}

	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return agreement
	}

	db.Agreements = store.CapTail(append(db.Agreements, agreement), store.MaxAgreements)

	if err := s.store.Write(ctx, db); err != nil {
		s.log.Error().Err(err).Msg("store write failed")
	}
	return agreement
}

// List returns all pipeline records, most recent first.
func (s *AgreementService) List(ctx context.Context) ([]model.Agreement, error) {
	db, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store read failed")
		return nil, err
	}
	return reversed(db.Agreements), nil
}
