package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RafaelMelo23/expensetracker/internal/api/middleware"
	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/service"
)

type stubAuthService struct {
	user     *domain.User
	token    string
	err      error
	lastCall string
}

func (s *stubAuthService) Register(_ context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	s.lastCall = "register"
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	s.lastCall = "login"
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.user, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser, FirstLogin: true}
	svc := &stubAuthService{user: user}
	tokens := service.NewTokenService("secret", "expensetracker", time.Hour)
	h := NewAuthHandler(svc, tokens)

	c, rec := postJSON(newEcho(), "/api/user/register",
		`{"email":"alice@example.com","password":"hunter2hunter2","first_name":"Alice","last_name":"Doe"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("unexpected response user: %+v", resp.User)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, service.NewTokenService("secret", "expensetracker", time.Hour))

	tests := []struct {
		name string
		body string
	}{
		{"malformed email", `{"email":"nope","password":"hunter2hunter2","first_name":"A","last_name":"B"}`},
		{"short password", `{"email":"a@b.com","password":"short","first_name":"A","last_name":"B"}`},
		{"missing name", `{"email":"a@b.com","password":"hunter2hunter2"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postJSON(newEcho(), "/api/user/register", tt.body)
			err := h.Register(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_LoginSetsCookie(t *testing.T) {
	tokens := service.NewTokenService("secret", "expensetracker", time.Hour)
	token, err := tokens.Issue("alice@example.com", "ROLE_USER", time.Now())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	user := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser}
	h := NewAuthHandler(&stubAuthService{user: user, token: token}, tokens)

	c, rec := postJSON(newEcho(), "/api/user/login",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	res := rec.Result()
	var jwtCookie *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == middleware.JWTCookieName {
			jwtCookie = ck
		}
	}
	if jwtCookie == nil {
		t.Fatal("JWT cookie not set")
	}
	if jwtCookie.Value != token {
		t.Fatal("cookie does not carry the issued token")
	}
	if !jwtCookie.HttpOnly || !jwtCookie.Secure {
		t.Fatalf("cookie must be HttpOnly and Secure: %+v", jwtCookie)
	}
	if jwtCookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie max age %d does not match token lifetime", jwtCookie.MaxAge)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != token {
		t.Fatal("response body does not carry the issued token")
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	tokens := service.NewTokenService("secret", "expensetracker", time.Hour)
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials}, tokens)

	c, _ := postJSON(newEcho(), "/api/user/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
}
