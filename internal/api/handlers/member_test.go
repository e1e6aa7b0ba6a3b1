package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/keicha2025/keicha-shop/internal/api/handlers"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
	repository "github.com/keicha2025/keicha-shop/internal/repositories"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberJWTKey = []byte("handler-test-key")

func memberRouter(repo *memMemberRepo, limiter repository.RateLimitRepository) *http.ServeMux {
	memberService := service.NewMemberService(repo, limiter, memberJWTKey, time.Hour)
	h := handlers.NewMemberHandler(memberService)
	auth := middleware.NewAuthMiddleware(memberJWTKey)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/members/login", h.Login())
	mux.HandleFunc("GET /api/v1/members/profile", auth.Authenticate(h.Profile()))
	mux.HandleFunc("PATCH /api/v1/members/profile", auth.Authenticate(h.UpdateProfile()))

	return mux
}

func loginAndGetToken(t *testing.T, mux *http.ServeMux, phone string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/members/login", strings.NewReader(`{"phone":"`+phone+`"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func TestMemberHandler_Login(t *testing.T) {
	t.Run("Success - New Member Created On First Login", func(t *testing.T) {
		// Arrange
		repo := newMemMemberRepo()
		mux := memberRouter(repo, allowAllLimiter{})

		// Act
		token := loginAndGetToken(t, mux, "0912345678")

		// Assert
		assert.NotEmpty(t, token)
		assert.Contains(t, repo.members, "0912345678")
	})

	t.Run("Failure - Bad Phone Format", func(t *testing.T) {
		// Arrange
		mux := memberRouter(newMemMemberRepo(), allowAllLimiter{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/members/login", strings.NewReader(`{"phone":"12345"}`))
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, errors.ErrCodeValidation, env.Error.Code)
	})

	t.Run("Throttled - 429 With RetryAfter", func(t *testing.T) {
		// Arrange
		mux := memberRouter(newMemMemberRepo(), throttledLimiter{retryAfter: 9})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/members/login", strings.NewReader(`{"phone":"0912345678"}`))
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		env := decodeEnvelope(t, rec)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 9, resp.RetryAfter)
		assert.Empty(t, resp.Token)
	})
}

func TestMemberHandler_Profile(t *testing.T) {
	t.Run("Success - Round Trip Through Update", func(t *testing.T) {
		// Arrange
		repo := newMemMemberRepo()
		mux := memberRouter(repo, allowAllLimiter{})
		token := loginAndGetToken(t, mux, "0912345678")

		updateBody := `{"name":"林小姐","store_711":"123456"}`
		updateReq := httptest.NewRequest(http.MethodPatch, "/api/v1/members/profile", strings.NewReader(updateBody))
		updateReq.Header.Set("Authorization", "Bearer "+token)
		updateRec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(updateRec, updateReq)

		// Assert
		require.Equal(t, http.StatusOK, updateRec.Code)

		getReq := httptest.NewRequest(http.MethodGet, "/api/v1/members/profile", http.NoBody)
		getReq.Header.Set("Authorization", "Bearer "+token)
		getRec := httptest.NewRecorder()
		mux.ServeHTTP(getRec, getReq)

		require.Equal(t, http.StatusOK, getRec.Code)
		env := decodeEnvelope(t, getRec)

		var member models.Member
		require.NoError(t, json.Unmarshal(env.Data, &member))
		assert.Equal(t, "林小姐", member.Name)
		assert.Equal(t, "123456", member.Store711)
	})

	t.Run("Failure - Store Number Must Be Six Digits", func(t *testing.T) {
		// Arrange
		mux := memberRouter(newMemMemberRepo(), allowAllLimiter{})
		token := loginAndGetToken(t, mux, "0912345678")

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/members/profile", strings.NewReader(`{"store_fami":"12"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Failure - No Token", func(t *testing.T) {
		// Arrange
		mux := memberRouter(newMemMemberRepo(), allowAllLimiter{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/profile", http.NoBody)
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, errors.ErrCodeUnauthorized, env.Error.Code)
	})

	t.Run("Failure - Garbage Token", func(t *testing.T) {
		// Arrange
		mux := memberRouter(newMemMemberRepo(), allowAllLimiter{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/profile", http.NoBody)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
