package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

const (
	patientID = "AAAA1111BBBB2222"
	otherID   = "ZZZZ9999YYYY8888"
)

type stubIdentityService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	getUserFn  func(ctx context.Context, identifier string) (*domain.User, error)
}

func (s *stubIdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubIdentityService) GetUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return s.getUserFn(ctx, identifier)
}

type stubPrescriptionService struct {
	createFn    func(ctx context.Context, in ports.CreatePrescriptionInput) (*domain.Prescription, error)
	byPatientFn func(ctx context.Context, identifier string) ([]*domain.Prescription, error)
	filteredFn  func(ctx context.Context, filter ports.PrescriptionFilter) ([]*domain.Prescription, error)
	fulfillFn   func(ctx context.Context, id string) (*domain.Prescription, error)
	revertFn    func(ctx context.Context) (*ports.RevertResult, error)
}

func (s *stubPrescriptionService) CreatePrescription(ctx context.Context, in ports.CreatePrescriptionInput) (*domain.Prescription, error) {
	return s.createFn(ctx, in)
}

func (s *stubPrescriptionService) ListPrescriptionsByPatient(ctx context.Context, identifier string) ([]*domain.Prescription, error) {
	return s.byPatientFn(ctx, identifier)
}

func (s *stubPrescriptionService) ListPrescriptionsFiltered(ctx context.Context, filter ports.PrescriptionFilter) ([]*domain.Prescription, error) {
	return s.filteredFn(ctx, filter)
}

func (s *stubPrescriptionService) FulfillPrescription(ctx context.Context, id string) (*domain.Prescription, error) {
	return s.fulfillFn(ctx, id)
}

func (s *stubPrescriptionService) RevertAllFulfilled(ctx context.Context) (*ports.RevertResult, error) {
	return s.revertFn(ctx)
}

// newTestContext builds an echo context for method/target with an optional
// JSON body.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withClaims mimics what the Auth middleware puts into the context.
func withClaims(c echo.Context, role domain.Role, username, identifier string) {
	c.Set("role", string(role))
	c.Set("username", username)
	c.Set("identifier", identifier)
}
