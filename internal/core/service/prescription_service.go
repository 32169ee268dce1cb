package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

type PrescriptionService struct {
	repo   ports.PrescriptionRepository
	logger zerolog.Logger
}

func NewPrescriptionService(repo ports.PrescriptionRepository, logger zerolog.Logger) *PrescriptionService {
	return &PrescriptionService{repo: repo, logger: logger}
}

// CreatePrescription validates and stores a new prescription. The patient
// identifier is not checked against the user store.
func (s *PrescriptionService) CreatePrescription(ctx context.Context, in ports.CreatePrescriptionInput) (*domain.Prescription, error) {
	if in.Identifier == "" || in.Kind == "" || strings.TrimSpace(in.PrescribingDoctor) == "" {
		return nil, domain.NewValidationError("identifier, kind and prescribing_doctor are required")
	}

	p := &domain.Prescription{
		Identifier:        in.Identifier,
		Kind:              in.Kind,
		Medications:       in.Medications,
		GeneralText:       strings.TrimSpace(in.GeneralText),
		PrescribingDoctor: in.PrescribingDoctor,
		CreatedAt:         time.Now().UTC(),
		Fulfilled:         false,
	}
	if err := p.ValidateContents(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create prescription")
		return nil, err
	}

	s.logger.Info().
		Str("prescription_id", created.ID).
		Str("identifier", created.Identifier).
		Str("kind", string(created.Kind)).
		Str("doctor", created.PrescribingDoctor).
		Msg("prescription created")
	return created, nil
}

func (s *PrescriptionService) ListPrescriptionsByPatient(ctx context.Context, identifier string) ([]*domain.Prescription, error) {
	if identifier == "" {
		return nil, domain.NewValidationError("identifier is required")
	}
	return s.ListPrescriptionsFiltered(ctx, ports.PrescriptionFilter{Identifier: identifier})
}

// ListPrescriptionsFiltered returns every prescription matching the supplied
// filters. An empty filter scans the whole collection.
func (s *PrescriptionService) ListPrescriptionsFiltered(ctx context.Context, filter ports.PrescriptionFilter) ([]*domain.Prescription, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Prescription{}
	}
	return items, nil
}

// FulfillPrescription marks a prescription dispensed. Repeating the call on a
// fulfilled record succeeds and leaves it fulfilled.
func (s *PrescriptionService) FulfillPrescription(ctx context.Context, id string) (*domain.Prescription, error) {
	if id == "" {
		return nil, domain.ErrPrescriptionNotFound
	}
	p, err := s.repo.MarkFulfilled(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("prescription_id", p.ID).Msg("prescription fulfilled")
	return p, nil
}

// RevertAllFulfilled flips every fulfilled prescription back to unfulfilled
// and returns the records as they were before the update. The snapshot and
// the update are separate operations: a record fulfilled in between is not
// reverted, and a retry after a partial failure reverts again.
func (s *PrescriptionService) RevertAllFulfilled(ctx context.Context) (*ports.RevertResult, error) {
	fulfilled := true
	snapshot, err := s.repo.List(ctx, ports.PrescriptionFilter{Fulfilled: &fulfilled})
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return &ports.RevertResult{Reverted: []*domain.Prescription{}}, nil
	}

	ids := make([]string, 0, len(snapshot))
	for _, p := range snapshot {
		ids = append(ids, p.ID)
	}

	count, err := s.repo.RevertFulfilled(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("candidates", len(ids)).Msg("bulk revert failed")
		return nil, err
	}

	s.logger.Warn().Int64("count", count).Msg("fulfilled prescriptions reverted")
	return &ports.RevertResult{Reverted: snapshot, Count: count}, nil
}
