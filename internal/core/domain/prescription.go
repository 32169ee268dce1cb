package domain

import (
	"strings"
	"time"
)

// PrescriptionKind selects which form a prescription was written on.
type PrescriptionKind string

const (
	KindDiabetes PrescriptionKind = "diabetes"
	KindGeneral  PrescriptionKind = "general"
)

// Valid reports whether k is a known prescription kind.
func (k PrescriptionKind) Valid() bool {
	return k == KindDiabetes || k == KindGeneral
}

// Medications holds the quantities of the fixed diabetes formulary.
// A nil field means the medication was not prescribed.
type Medications struct {
	Metformin    *int `json:"metformin,omitempty"`
	Glimepiride  *int `json:"glimepiride,omitempty"`
	Vildagliptin *int `json:"vildagliptin,omitempty"`
	Pioglitazone *int `json:"pioglitazone,omitempty"`
}

// named returns the quantities keyed by medication name, in formulary order.
func (m Medications) named() []struct {
	name string
	qty  *int
} {
	return []struct {
		name string
		qty  *int
	}{
		{"metformin", m.Metformin},
		{"glimepiride", m.Glimepiride},
		{"vildagliptin", m.Vildagliptin},
		{"pioglitazone", m.Pioglitazone},
	}
}

// Any reports whether at least one quantity is set.
func (m Medications) Any() bool {
	for _, n := range m.named() {
		if n.qty != nil {
			return true
		}
	}
	return false
}

// Prescription is a single order written by a doctor for a patient.
type Prescription struct {
	ID                string           `json:"id"`
	Identifier        string           `json:"identifier"`
	Kind              PrescriptionKind `json:"kind"`
	Medications       Medications      `json:"medications"`
	GeneralText       string           `json:"general_text,omitempty"`
	PrescribingDoctor string           `json:"prescribing_doctor"`
	CreatedAt         time.Time        `json:"created_at"`
	Fulfilled         bool             `json:"fulfilled"`
}

// ValidateContents enforces the per-kind field exclusivity: diabetes
// prescriptions carry only positive medication quantities, general ones only
// free text.
func (p *Prescription) ValidateContents() error {
	switch p.Kind {
	case KindDiabetes:
		if strings.TrimSpace(p.GeneralText) != "" {
			return NewValidationError("general_text is not allowed on a diabetes prescription")
		}
		if !p.Medications.Any() {
			return NewValidationError("a diabetes prescription needs at least one medication quantity")
		}
		for _, n := range p.Medications.named() {
			if n.qty != nil && *n.qty <= 0 {
				return Validationf("%s must be a positive quantity", n.name)
			}
		}
	case KindGeneral:
		if p.Medications.Any() {
			return NewValidationError("medication quantities are not allowed on a general prescription")
		}
		if strings.TrimSpace(p.GeneralText) == "" {
			return NewValidationError("general_text is required for a general prescription")
		}
	default:
		return NewValidationError("kind must be one of: diabetes general")
	}
	return nil
}
