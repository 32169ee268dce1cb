package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

// DashboardHandler serves the role-specific aggregate views.
type DashboardHandler struct {
	identity      ports.IdentityService
	prescriptions ports.PrescriptionService
}

func NewDashboardHandler(identity ports.IdentityService, prescriptions ports.PrescriptionService) *DashboardHandler {
	return &DashboardHandler{identity: identity, prescriptions: prescriptions}
}

// Get handles GET /dashboard/:role.
//
//   - patient: the user record and their prescriptions (query identifier,
//     defaults to the caller)
//   - doctor: prescriptions written by a doctor (query doctor, defaults to
//     the caller)
//   - pharmacist: every unfulfilled prescription
//
// @Summary      Role dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        role        path      string  true   "patient, doctor or pharmacist"
// @Param        identifier  query     string  false  "Patient identifier (patient dashboard)"
// @Param        doctor      query     string  false  "Doctor username (doctor dashboard)"
// @Success      200         {object}  patientDashboardResponse
// @Success      200         {object}  prescriptionsDashboardResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /dashboard/{role} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	role := domain.Role(c.Param("role"))
	if !role.Valid() {
		return domain.NewValidationError("role must be one of: patient doctor pharmacist")
	}
	if role != cl.Role {
		return domain.ErrForbidden
	}

	ctx := c.Request().Context()
	switch role {
	case domain.RolePatient:
		identifier := c.QueryParam("identifier")
		if identifier == "" {
			identifier = cl.Identifier
		}
		if !cl.canReadPatient(identifier) {
			return domain.ErrForbidden
		}
		user, err := h.identity.GetUserByIdentifier(ctx, identifier)
		if err != nil {
			return err
		}
		items, err := h.prescriptions.ListPrescriptionsByPatient(ctx, identifier)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, patientDashboardResponse{
			Role:          string(role),
			User:          toUserResponse(user),
			Prescriptions: toPrescriptionResponses(items),
		})

	case domain.RoleDoctor:
		doctor := c.QueryParam("doctor")
		if doctor == "" {
			doctor = cl.Username
		}
		items, err := h.prescriptions.ListPrescriptionsFiltered(ctx, ports.PrescriptionFilter{PrescribingDoctor: doctor})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, prescriptionsDashboardResponse{Role: string(role), Prescriptions: toPrescriptionResponses(items)})

	default:
		unfulfilled := false
		items, err := h.prescriptions.ListPrescriptionsFiltered(ctx, ports.PrescriptionFilter{Fulfilled: &unfulfilled})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, prescriptionsDashboardResponse{Role: string(role), Prescriptions: toPrescriptionResponses(items)})
	}
}
