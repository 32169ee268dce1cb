package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/api/metrics"
	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

type IdentityHandler struct {
	identityService ports.IdentityService
}

func NewIdentityHandler(identityService ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

// Register creates a new user account for the role named in the path.
//
// @Summary      Register a new user
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        role  path      string           true  "patient, doctor or pharmacist"
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register/{role} [post]
func (h *IdentityHandler) Register(c echo.Context) error {
	urlRole := c.Param("role")
	label := roleLabel(urlRole)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(label, "invalid").Inc()
		return err
	}

	user, err := h.identityService.Register(c.Request().Context(), toRegisterInput(urlRole, req))
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(label, registrationResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role), "created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "user registered successfully",
		User:    toUserResponse(user),
	})
}

// Login authenticates a user by identifier, or by username within the role
// named in the path, and returns a bearer token.
//
// @Summary      Login
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        role  path      string        true  "patient, doctor or pharmacist"
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login/{role} [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	method := "username"
	if domain.IsIdentifier(req.LoginIdentifier) {
		method = "identifier"
	}

	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(method, "invalid").Inc()
		return err
	}

	res, err := h.identityService.Login(c.Request().Context(), ports.LoginInput{
		LoginIdentifier: req.LoginIdentifier,
		Password:        req.Password,
		Role:            domain.Role(c.Param("role")),
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(method, loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(method, "success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		Token:   res.Token,
		User:    toUserResponse(res.User),
	})
}

// GetUser returns a single user by identifier. Patients may only read
// themselves.
//
// @Summary      Get a user by identifier
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  path      string  true  "16-character user identifier"
// @Success      200         {object}  userResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /user/{identifier} [get]
func (h *IdentityHandler) GetUser(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	identifier := c.Param("identifier")
	if !cl.canReadPatient(identifier) {
		return domain.ErrForbidden
	}

	user, err := h.identityService.GetUserByIdentifier(c.Request().Context(), identifier)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// roleLabel keeps metric label values bounded to the known roles.
func roleLabel(role string) string {
	if domain.Role(role).Valid() {
		return role
	}
	return "unknown"
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
