package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/api/metrics"
	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

// PrescriptionHandler handles HTTP requests for prescription operations.
type PrescriptionHandler struct {
	service ports.PrescriptionService
}

func NewPrescriptionHandler(service ports.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// Create handles POST /prescription. The prescribing doctor defaults to the
// caller and may not name another doctor.
//
// @Summary      Write a prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPrescriptionRequest  true  "Prescription"
// @Success      201   {object}  prescriptionEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /prescription [post]
func (h *PrescriptionHandler) Create(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	doctor := req.PrescribingDoctor
	if doctor == "" {
		doctor = cl.Username
	} else if doctor != cl.Username {
		return domain.ErrForbidden
	}

	p, err := h.service.CreatePrescription(c.Request().Context(), toCreatePrescriptionInput(req, doctor))
	if err != nil {
		return err
	}

	metrics.PrescriptionsCreatedTotal.WithLabelValues(string(p.Kind)).Inc()
	return c.JSON(http.StatusCreated, prescriptionEnvelope{
		Message:      "prescription added successfully",
		Prescription: toPrescriptionResponse(p),
	})
}

// ListByPatient handles GET /prescriptions/:identifier.
//
// @Summary      List a patient's prescriptions
// @Tags         prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  path      string  true  "Patient identifier"
// @Success      200         {object}  listPrescriptionsResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /prescriptions/{identifier} [get]
func (h *PrescriptionHandler) ListByPatient(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	identifier := c.Param("identifier")
	if !cl.canReadPatient(identifier) {
		return domain.ErrForbidden
	}

	items, err := h.service.ListPrescriptionsByPatient(c.Request().Context(), identifier)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPrescriptionsResponse{Data: toPrescriptionResponses(items), Count: len(items)})
}

// List handles GET /pharmacist/prescriptions. The result is not paginated.
//
// @Summary      List prescriptions with optional filters
// @Tags         pharmacist
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  query     string  false  "Patient identifier"
// @Param        doctor      query     string  false  "Prescribing doctor username"
// @Param        fulfilled   query     bool    false  "Fulfilment state"
// @Success      200         {object}  listPrescriptionsResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /pharmacist/prescriptions [get]
func (h *PrescriptionHandler) List(c echo.Context) error {
	filter := ports.PrescriptionFilter{
		Identifier:        c.QueryParam("identifier"),
		PrescribingDoctor: c.QueryParam("doctor"),
	}
	if raw := c.QueryParam("fulfilled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("fulfilled must be true or false")
		}
		filter.Fulfilled = &v
	}

	items, err := h.service.ListPrescriptionsFiltered(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPrescriptionsResponse{Data: toPrescriptionResponses(items), Count: len(items)})
}

// Fulfill handles PATCH /pharmacist/prescription/:id.
//
// @Summary      Mark a prescription fulfilled
// @Tags         pharmacist
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Prescription id"
// @Success      200  {object}  prescriptionEnvelope
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /pharmacist/prescription/{id} [patch]
func (h *PrescriptionHandler) Fulfill(c echo.Context) error {
	p, err := h.service.FulfillPrescription(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PrescriptionsFulfilledTotal.Inc()
	return c.JSON(http.StatusOK, prescriptionEnvelope{
		Message:      "prescription marked as fulfilled",
		Prescription: toPrescriptionResponse(p),
	})
}

// RevertAll handles POST /fetch-and-revert-prescriptions.
//
// @Summary      Revert every fulfilled prescription
// @Description  Returns the fulfilled prescriptions as they were before the revert.
// @Tags         pharmacist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revertResponse
// @Failure      403  {object}  errorResponse
// @Router       /fetch-and-revert-prescriptions [post]
func (h *PrescriptionHandler) RevertAll(c echo.Context) error {
	res, err := h.service.RevertAllFulfilled(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.PrescriptionsRevertedTotal.Add(float64(res.Count))
	return c.JSON(http.StatusOK, revertResponse{
		Message:       "fulfilled prescriptions reverted",
		Count:         res.Count,
		Prescriptions: toPrescriptionResponses(res.Reverted),
	})
}
