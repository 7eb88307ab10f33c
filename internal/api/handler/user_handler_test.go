package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/ports"
)

type stubUserService struct {
	createFn       func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.User, error)
	listAllFn      func(ctx context.Context) ([]domain.User, error)
	listPatientsFn func(ctx context.Context) ([]domain.User, error)
	updateFn       func(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn       func(ctx context.Context, id int64) error
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.listAllFn(ctx)
}

func (s *stubUserService) ListPatients(ctx context.Context) ([]domain.User, error) {
	return s.listPatientsFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func samplePatient() *domain.User {
	return &domain.User{
		ID:        7,
		FullName:  "Ana Perez",
		Email:     "ana@x.com",
		IsActive:  domain.ActiveYes,
		Roles:     []domain.Role{{ID: 2, Name: domain.RolePatient}},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Role != domain.RolePatient || input.Email != "ana@x.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return samplePatient(), nil
		},
	}
	h := NewUserHandler(stub)

	body := strings.NewReader(`{"fullName":"Ana Perez","email":"ana@x.com","password":"Abcd1234!","role":"PATIENT"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"].(float64) != 7 || resp["isActive"] != "Y" {
		t.Fatalf("unexpected payload: %v", resp)
	}
	roles, ok := resp["roles"].([]any)
	if !ok || len(roles) != 1 || roles[0] != domain.RolePatient {
		t.Fatalf("unexpected roles: %v", resp["roles"])
	}
	if _, present := resp["labId"]; present {
		t.Fatalf("absent lab id must be omitted from the payload")
	}
}

func TestUserHandler_Create_ValidationFailures(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called for invalid payloads")
			return nil, nil
		},
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing full name", `{"email":"a@x.com","password":"Abcd1234!","role":"PATIENT"}`},
		{"short password", `{"fullName":"A","email":"a@x.com","password":"abc","role":"PATIENT"}`},
		{"bad active flag", `{"fullName":"A","email":"a@x.com","password":"Abcd1234!","role":"PATIENT","isActive":"X"}`},
		{"missing role", `{"fullName":"A","email":"a@x.com","password":"Abcd1234!"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Create(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	body := strings.NewReader(`{"fullName":"Ana","email":"ana@x.com","password":"Abcd1234!","role":"PATIENT"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubUserService{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 7 {
				return nil, domain.ErrUserNotFound
			}
			return samplePatient(), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Unknown id propagates NotFound.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := h.GetByID(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// Malformed id is a 400 before the service is reached.
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.GetByID(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubUserService{
		listAllFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{*samplePatient()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["email"] != "ana@x.com" {
		t.Fatalf("unexpected listing: %v", resp)
	}
}

func TestUserHandler_Update(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubUserService{
		updateFn: func(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
			if id != 7 || input.Password != "" {
				t.Fatalf("unexpected args: %d %+v", id, input)
			}
			u := samplePatient()
			u.FullName = input.FullName
			return u, nil
		},
	})

	body := strings.NewReader(`{"fullName":"Ana Maria Perez","email":"ana@x.com","role":"PATIENT"}`)
	req := httptest.NewRequest(http.MethodPut, "/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := []int64{}
	h := NewUserHandler(&stubUserService{
		deleteFn: func(ctx context.Context, id int64) error {
			if len(deleted) > 0 {
				return domain.ErrUserNotFound
			}
			deleted = append(deleted, id)
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Deleting again surfaces NotFound.
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
