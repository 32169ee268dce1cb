package handler

import "time"

type createPrescriptionRequest struct {
	Identifier        string `json:"identifier"         validate:"required"`
	Kind              string `json:"kind"               validate:"required,oneof=diabetes general"`
	Metformin         *int   `json:"metformin"          validate:"omitempty,gt=0"`
	Glimepiride       *int   `json:"glimepiride"        validate:"omitempty,gt=0"`
	Vildagliptin      *int   `json:"vildagliptin"       validate:"omitempty,gt=0"`
	Pioglitazone      *int   `json:"pioglitazone"       validate:"omitempty,gt=0"`
	GeneralText       string `json:"general_text"`
	PrescribingDoctor string `json:"prescribing_doctor"`
}

type medicationsResponse struct {
	Metformin    *int `json:"metformin,omitempty"`
	Glimepiride  *int `json:"glimepiride,omitempty"`
	Vildagliptin *int `json:"vildagliptin,omitempty"`
	Pioglitazone *int `json:"pioglitazone,omitempty"`
}

type prescriptionResponse struct {
	ID                string              `json:"id"`
	Identifier        string              `json:"identifier"`
	Kind              string              `json:"kind"`
	Medications       medicationsResponse `json:"medications"`
	GeneralText       string              `json:"general_text,omitempty"`
	PrescribingDoctor string              `json:"prescribing_doctor"`
	CreatedAt         time.Time           `json:"created_at"`
	Fulfilled         bool                `json:"fulfilled"`
}

type prescriptionEnvelope struct {
	Message      string               `json:"message"`
	Prescription prescriptionResponse `json:"prescription"`
}

type listPrescriptionsResponse struct {
	Data  []prescriptionResponse `json:"data"`
	Count int                    `json:"count"`
}

type revertResponse struct {
	Message       string                 `json:"message"`
	Count         int64                  `json:"count"`
	Prescriptions []prescriptionResponse `json:"prescriptions"`
}

type patientDashboardResponse struct {
	Role          string                 `json:"role"`
	User          userResponse           `json:"user"`
	Prescriptions []prescriptionResponse `json:"prescriptions"`
}

type prescriptionsDashboardResponse struct {
	Role          string                 `json:"role"`
	Prescriptions []prescriptionResponse `json:"prescriptions"`
}
