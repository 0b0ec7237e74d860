package handlers

import (
	"context"
	"net/http"

	"authgate/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerRes service.RegisterResult
	registerErr error
	loginToken  string
	loginErr    error
	claims      *service.Claims
	parseErr    error

	lastRegUsername   string
	lastRegPassword   string
	lastLoginUsername string
	lastLoginPassword string
	lastParseToken    string
}

func (m *mockAuth) Register(_ context.Context, username, password string) (service.RegisterResult, error) {
	m.lastRegUsername = username
	m.lastRegPassword = password
	return m.registerRes, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastParseToken = token
	return m.claims, m.parseErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
