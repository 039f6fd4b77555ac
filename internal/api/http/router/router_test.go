package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/httpcontext"
	"github.com/dtroode/authkeeper/internal/api/http/middleware"
	"github.com/dtroode/authkeeper/internal/apierrors"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/service"
	"github.com/dtroode/authkeeper/internal/testutil"
)

type stubAuthService struct{}

func (s *stubAuthService) SignUp(context.Context, string, string, string) (model.PublicUser, error) {
	return model.PublicUser{}, apierrors.NewValidation(map[string][]string{"name": {"Name is required"}})
}

func (s *stubAuthService) SignIn(context.Context, string, string, model.ClientInfo) (model.PublicUser, service.TokenPair, error) {
	return model.PublicUser{}, service.TokenPair{}, apierrors.NewInvalidCredentials()
}

func (s *stubAuthService) Refresh(context.Context, string, model.ClientInfo) (service.TokenPair, error) {
	return service.TokenPair{}, apierrors.NewSessionInvalid()
}

func (s *stubAuthService) SignOut(context.Context, string) {}

type stubUserService struct{}

func (s *stubUserService) GetByID(context.Context, uuid.UUID) (model.PublicUser, error) {
	return model.PublicUser{}, apierrors.NewUserNotFound()
}

type stubVerifier struct{}

func (s *stubVerifier) ParseAccessToken(string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := testutil.MakeNoopLogger()
	ctxMgr := httpcontext.NewManager()

	authHandler := handler.NewAuth(&stubAuthService{}, handler.CookieConfig{MaxAge: 60}, log)
	userHandler := handler.NewUser(&stubUserService{}, ctxMgr, log)
	authenticate := middleware.NewAuthenticate(&stubVerifier{}, ctxMgr, log)

	return New(authHandler, userHandler, authenticate, log).Register()
}

func TestRouter_Welcome(t *testing.T) {
	engine := newEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the API")
}

func TestRouter_Routes(t *testing.T) {
	engine := newEngine()

	tests := []struct {
		method string
		path   string
		header map[string]string
		want   int
	}{
		{http.MethodPost, "/api/v1/auth/sign-up", nil, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/auth/sign-in", nil, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/auth/refresh", nil, http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/sign-out", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/users/me", nil, http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/users/me", map[string]string{"Authorization": "Bearer token"}, http.StatusNotFound},
		{http.MethodGet, "/api/v1/unknown", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_SignIn_ReachesService(t *testing.T) {
	engine := newEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in",
		strings.NewReader(`{"email":"ann@x.com","password":"longpass1"}`))
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
