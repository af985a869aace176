package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wishlistapp/accounts/internal/core/domain"
	"github.com/wishlistapp/accounts/internal/core/ports"
)

type stubAccountService struct {
	signupFn        func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn         func(ctx context.Context, in ports.LoginInput) (*ports.Session, error)
	resumeFn        func(ctx context.Context, userID, token string) (*ports.Session, error)
	logoutFn        func(ctx context.Context, userID string) error
	getUserFn       func(ctx context.Context, id string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error)
}

func (s *stubAccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAccountService) ResumeSession(ctx context.Context, userID, token string) (*ports.Session, error) {
	return s.resumeFn(ctx, userID, token)
}

func (s *stubAccountService) Logout(ctx context.Context, userID string) error {
	return s.logoutFn(ctx, userID)
}

func (s *stubAccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, id, in)
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAccountHandler_Signup_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Name != "Example User" || in.Email != "User@Example.com" || in.Password != "fooBar123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.PasswordConfirmation == nil || *in.PasswordConfirmation != "fooBar123" {
				t.Fatalf("confirmation not forwarded")
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: "user@example.com", PasswordDigest: "secret-digest"}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/users",
		`{"name":"Example User","email":"User@Example.com","password":"fooBar123","password_confirmation":"fooBar123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["email"] != "user@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "digest") {
		t.Fatalf("digest leaked in response: %s", rec.Body.String())
	}
}

func TestAccountHandler_Signup_NoConfirmation(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.PasswordConfirmation != nil {
				t.Fatalf("expected nil confirmation")
			}
			return &domain.User{ID: "u1"}, nil
		},
	}

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"name":"A","email":"a@b.co","password":"fooBar123"}`)
	if err := NewAccountHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAccountHandler_Signup_ValidationErrorPropagates(t *testing.T) {
	e := echo.New()
	verr := &domain.ValidationError{Violations: domain.Violations{{Field: domain.FieldEmail, Code: domain.CodeInvalidFormat, Message: "is invalid"}}}
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			return nil, verr
		},
	}

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"email":"nope"}`)
	err := NewAccountHandler(stub).Signup(c)

	var got *domain.ValidationError
	if !errors.As(err, &got) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountHandler_Signup_InvalidPayload(t *testing.T) {
	e := echo.New()
	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"name":`)

	err := NewAccountHandler(&stubAccountService{}).Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 http error, got %v", err)
	}
}

func TestAccountHandler_UpdateProfile_PartialFields(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		updateProfileFn: func(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Name == nil || *in.Name != "New Name" {
				t.Fatalf("name not forwarded")
			}
			if in.Email != nil || in.Password != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return &domain.User{ID: id, Name: *in.Name}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodPatch, "/users/u1", `{"name":"New Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := NewAccountHandler(stub).UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_GetUser(t *testing.T) {
	e := echo.New()
	stub := &stubAccountService{
		getUserFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "missing" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: id, Name: "Example User"}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.GetUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newJSONContext(e, http.MethodGet, "/users/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.GetUser(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
