package middleware

import (
	"blackarrow-backend/internal/events"
	internaljwt "blackarrow-backend/internal/jwt"
	"blackarrow-backend/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	h := Chain(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mark("first"), mark("second"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "first,second,handler" {
		t.Fatalf("unexpected order: %s", got)
	}
}

func TestLoggingSetsRequestIDAndCorrelation(t *testing.T) {
	var correlation string
	h := Logging()(func(w http.ResponseWriter, r *http.Request) {
		correlation = events.CorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	res := httptest.NewRecorder()
	h(res, req)

	if res.Header().Get(RequestIDHeader) != "req-123" {
		t.Fatalf("request id not echoed: %q", res.Header().Get(RequestIDHeader))
	}
	if correlation != "req-123" {
		t.Fatalf("correlation id not in context: %q", correlation)
	}
	if res.Code != http.StatusTeapot {
		t.Fatalf("unexpected status %d", res.Code)
	}

	res = httptest.NewRecorder()
	h(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestValidateJWTMiddleware(t *testing.T) {
	issuer := internaljwt.NewIssuer(map[internaljwt.Role]string{internaljwt.RoleAdmin: "test-secret"}, nil)
	token, err := issuer.CreateToken(internaljwt.User{Id: "admin", Email: "owner@blackarrow.test"}, internaljwt.RoleAdmin, 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	expired, err := issuer.CreateToken(internaljwt.User{Id: "admin"}, internaljwt.RoleAdmin, time.Now().Add(-time.Minute).Unix())
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	var email string
	h := ValidateJWTMiddleware(issuer, internaljwt.RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
		email = ClaimString(r.Context(), "email")
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			res := httptest.NewRecorder()
			h(res, req)
			if res.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, res.Code)
			}
		})
	}

	if email != "owner@blackarrow.test" {
		t.Fatalf("claims not forwarded, email=%q", email)
	}
}

func TestRequireSession(t *testing.T) {
	var seen string
	h := RequireSession()(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	})

	res := httptest.NewRecorder()
	h(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without header, got %d", res.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "not-a-session")
	res = httptest.NewRecorder()
	h(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", res.Code)
	}

	id := utils.NewSessionID()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, id)
	res = httptest.NewRecorder()
	h(res, req)
	if res.Code != http.StatusOK || seen != id {
		t.Fatalf("expected session %q to pass, got %d / %q", id, res.Code, seen)
	}
}
