package handler

import (
	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(urlRole string, req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		AssertedRole: domain.Role(urlRole),
		Role:         domain.Role(req.Role),
		Username:     req.Username,
		Password:     req.Password,
		Age:          req.Age,
		Gender:       req.Gender,
		Address:      req.Address,
		Phone:        req.Phone,
		Identifier:   req.Identifier,
	}
}

func toCreatePrescriptionInput(req createPrescriptionRequest, doctor string) ports.CreatePrescriptionInput {
	return ports.CreatePrescriptionInput{
		Identifier: req.Identifier,
		Kind:       domain.PrescriptionKind(req.Kind),
		Medications: domain.Medications{
			Metformin:    req.Metformin,
			Glimepiride:  req.Glimepiride,
			Vildagliptin: req.Vildagliptin,
			Pioglitazone: req.Pioglitazone,
		},
		GeneralText:       req.GeneralText,
		PrescribingDoctor: doctor,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       string(u.Role),
		Age:        u.Age,
		Gender:     u.Gender,
		Address:    u.Address,
		Phone:      u.Phone,
		Identifier: u.Identifier,
		CreatedAt:  u.CreatedAt.UTC(),
	}
}

func toPrescriptionResponse(p *domain.Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:         p.ID,
		Identifier: p.Identifier,
		Kind:       string(p.Kind),
		Medications: medicationsResponse{
			Metformin:    p.Medications.Metformin,
			Glimepiride:  p.Medications.Glimepiride,
			Vildagliptin: p.Medications.Vildagliptin,
			Pioglitazone: p.Medications.Pioglitazone,
		},
		GeneralText:       p.GeneralText,
		PrescribingDoctor: p.PrescribingDoctor,
		CreatedAt:         p.CreatedAt.UTC(),
		Fulfilled:         p.Fulfilled,
	}
}

func toPrescriptionResponses(items []*domain.Prescription) []prescriptionResponse {
	out := make([]prescriptionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPrescriptionResponse(p))
	}
	return out
}
