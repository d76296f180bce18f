package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cityconnect/transit-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := []gin.HandlerFunc{AuthMiddleware(jwtService)}
	chain = append(chain, extra...)
	chain = append(chain, func(c *gin.Context) {
		userCtx, _ := GetUserContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userCtx.UserID, "role": userCtx.Role})
	})

	router.GET("/protected", chain...)
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_AUTH_HEADER")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", -time.Minute, time.Hour)
	router := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(uuid.New(), "rider@example.com", "traveller")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService)

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "rider@example.com", "traveller")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "traveller")
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService, RequireRole("staff"))

	token, err := jwtService.GenerateAccessToken(uuid.New(), "ops@example.com", "staff")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)
	router := setupAuthRouter(jwtService, RequireRole("staff"))

	token, err := jwtService.GenerateAccessToken(uuid.New(), "rider@example.com", "traveller")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_PERMISSIONS")
}

func TestRequireRoleWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/staff-only", RequireRole("staff"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/staff-only", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_USER_CONTEXT")
}
