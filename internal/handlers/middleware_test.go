package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.userIdentityMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": c.GetString(ctxUserID), "username": c.GetString(ctxUsername)})
	})
	return r
}

func TestUserIdentityMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		parseErr error
		wantMsg  string
	}{
		{name: "missing header", header: "", wantMsg: msgMissingAuthHeader},
		{name: "invalid scheme", header: "Token abc", wantMsg: msgBadAuthHeader},
		{name: "bearer without token", header: "Bearer", wantMsg: msgBadAuthHeader},
		{name: "bearer with blank token", header: "Bearer   ", wantMsg: msgBadAuthHeader},
		{name: "expired/invalid token", header: "Bearer expired", parseErr: service.ErrInvalidToken, wantMsg: msgBadToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}

			var out struct {
				Message string `json:"message"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Message != tc.wantMsg {
				t.Fatalf("message: got %q, want %q", out.Message, tc.wantMsg)
			}
		})
	}
}

func TestUserIdentityMiddleware_SuccessSetsIdentityAndProceeds(t *testing.T) {
	auth := &mockAuth{claims: &service.Claims{UserID: "u-123", Username: "alice"}}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header = authHeader("good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK       bool   `json:"ok"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.UserID != "u-123" || resp.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
	}
}

func TestUserIdentityMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	for _, scheme := range []string{"bearer", "BEARER", "bEaReR"} {
		t.Run(scheme, func(t *testing.T) {
			auth := &mockAuth{claims: &service.Claims{UserID: "u-9", Username: "zoe"}}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", scheme+" tok")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200; body=%s", w.Code, w.Body.String())
			}
			if auth.lastParseToken != "tok" {
				t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "tok")
			}
		})
	}
}

func TestMeEndpoint(t *testing.T) {
	auth := &mockAuth{claims: &service.Claims{UserID: "u-1", Username: "bob"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["userId"] != "u-1" || body["username"] != "bob" {
		t.Fatalf("unexpected body %v", body)
	}
}
