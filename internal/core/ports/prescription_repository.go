package ports

import (
	"context"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// PrescriptionFilter narrows a prescription listing. Zero-valued fields do not
// filter; an empty filter matches every prescription.
type PrescriptionFilter struct {
	Identifier        string
	PrescribingDoctor string
	Fulfilled         *bool
}

// PrescriptionRepository defines persistence operations for prescriptions.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error)
	// List returns matching prescriptions in insertion order.
	List(ctx context.Context, filter PrescriptionFilter) ([]*domain.Prescription, error)
	// MarkFulfilled sets fulfilled=true and returns the updated record.
	// Unknown or malformed ids yield domain.ErrPrescriptionNotFound.
	MarkFulfilled(ctx context.Context, id string) (*domain.Prescription, error)
	// RevertFulfilled sets fulfilled=false on the given ids and reports how
	// many documents changed.
	RevertFulfilled(ctx context.Context, ids []string) (int64, error)
}
