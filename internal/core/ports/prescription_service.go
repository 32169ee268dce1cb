package ports

import (
	"context"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// CreatePrescriptionInput carries the data a doctor submits.
type CreatePrescriptionInput struct {
	Identifier        string
	Kind              domain.PrescriptionKind
	Medications       domain.Medications
	GeneralText       string
	PrescribingDoctor string
}

// RevertResult is the pre-update snapshot of a bulk revert and the number of
// records that were flipped back to unfulfilled.
type RevertResult struct {
	Reverted []*domain.Prescription
	Count    int64
}

// PrescriptionService defines use-case operations for prescriptions.
type PrescriptionService interface {
	CreatePrescription(ctx context.Context, in CreatePrescriptionInput) (*domain.Prescription, error)
	ListPrescriptionsByPatient(ctx context.Context, identifier string) ([]*domain.Prescription, error)
	ListPrescriptionsFiltered(ctx context.Context, filter PrescriptionFilter) ([]*domain.Prescription, error)
	FulfillPrescription(ctx context.Context, id string) (*domain.Prescription, error)
	RevertAllFulfilled(ctx context.Context) (*RevertResult, error)
}
