package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"
)

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	auth := &mockAuth{registerUser: models.PublicUser{ID: 42, Name: "u"}, loginToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	// register success
	w := do(r, http.MethodPost, "/auth/register", `{"name":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var u map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if int(u["id"].(float64)) != 42 || u["name"] != "u" {
		t.Fatalf("unexpected register body: %v", u)
	}
	if _, leaked := u["hashed_password"]; leaked {
		t.Fatalf("register response leaks the hash: %v", u)
	}
	if auth.lastRegisterName != "u" || auth.lastRegisterPassword != "p" {
		t.Fatalf("Register got (%q,%q)", auth.lastRegisterName, auth.lastRegisterPassword)
	}

	// login success
	w = do(r, http.MethodPost, "/auth/login", `{"name":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var tok tokenResponse
	_ = json.Unmarshal(w.Body.Bytes(), &tok)
	if tok.AccessToken != "tok123" || tok.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", tok)
	}
}

func TestAuthHandlers_LoginAcceptsPasswordForm(t *testing.T) {
	auth := &mockAuth{loginToken: "form-tok"}
	r := newTestRouter(&service.Service{Authorization: auth})

	h := http.Header{}
	h.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, http.MethodPost, "/auth/login", "username=bob&password=secret", h)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastLoginName != "bob" || auth.lastLoginPassword != "secret" {
		t.Fatalf("Login got (%q,%q)", auth.lastLoginName, auth.lastLoginPassword)
	}
}

func TestAuthHandlers_Errors(t *testing.T) {
	cases := []struct {
		name       string
		auth       *mockAuth
		path, body string
		wantCode   int
		wantDetail string
	}{
		{
			name:       "register duplicate name",
			auth:       &mockAuth{registerErr: service.ErrUserExists},
			path:       "/auth/register",
			body:       `{"name":"u","password":"p"}`,
			wantCode:   http.StatusBadRequest,
			wantDetail: msgUserExists,
		},
		{
			name:       "register invalid input",
			auth:       &mockAuth{registerErr: fmt.Errorf("%w: password too long", service.ErrInvalidInput)},
			path:       "/auth/register",
			body:       `{"name":"u","password":"p"}`,
			wantCode:   http.StatusBadRequest,
			wantDetail: "invalid input: password too long",
		},
		{
			name:     "register missing password",
			auth:     &mockAuth{},
			path:     "/auth/register",
			body:     `{"name":"u"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "login wrong credentials",
			auth:       &mockAuth{loginErr: service.ErrInvalidCredentials},
			path:       "/auth/login",
			body:       `{"name":"u","password":"bad"}`,
			wantCode:   http.StatusBadRequest,
			wantDetail: msgInvalidCredentials,
		},
		{
			name:     "login bad body",
			auth:     &mockAuth{},
			path:     "/auth/login",
			body:     `{"name":1}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "login store failure",
			auth:       &mockAuth{loginErr: errors.New("disk I/O error")},
			path:       "/auth/login",
			body:       `{"name":"u","password":"p"}`,
			wantCode:   http.StatusInternalServerError,
			wantDetail: msgInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := do(r, http.MethodPost, tc.path, tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if got := detailOf(t, w); tc.wantDetail != "" && got != tc.wantDetail {
				t.Fatalf("detail: got %q, want %q", got, tc.wantDetail)
			}
		})
	}
}
