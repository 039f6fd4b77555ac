package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/api/http/httpcontext"
	"github.com/dtroode/authkeeper/internal/testutil"
)

type verifierMock struct {
	mock.Mock
}

func (m *verifierMock) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newProtectedRouter(verifier TokenVerifier) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	ctxMgr := httpcontext.NewManager()
	auth := NewAuthenticate(verifier, ctxMgr, testutil.MakeNoopLogger())

	seen := &uuid.UUID{}
	engine := gin.New()
	engine.GET("/protected", auth.Handle, func(c *gin.Context) {
		if userID, ok := ctxMgr.GetUserIDFromContext(c.Request.Context()); ok {
			*seen = userID
		}
		c.Status(http.StatusOK)
	})
	return engine, seen
}

func TestAuthenticate_Success(t *testing.T) {
	userID := uuid.New()
	verifier := &verifierMock{}
	verifier.On("ParseAccessToken", "good-token").Return(userID, nil).Once()

	engine, seen := newProtectedRouter(verifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *seen)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	engine, _ := newProtectedRouter(&verifierMock{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing authorization token")
}

func TestAuthenticate_NotBearer(t *testing.T) {
	engine, _ := newProtectedRouter(&verifierMock{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &verifierMock{}
	verifier.On("ParseAccessToken", "bad-token").Return(uuid.Nil, assert.AnError).Once()

	engine, _ := newProtectedRouter(verifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthenticate_NilUserID(t *testing.T) {
	verifier := &verifierMock{}
	verifier.On("ParseAccessToken", "empty-subject").Return(uuid.Nil, nil).Once()

	engine, _ := newProtectedRouter(verifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer empty-subject")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
