package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmflow/pharmflow/internal/config"
	"github.com/pharmflow/pharmflow/internal/domain"
	"github.com/pharmflow/pharmflow/pkg/auth"
)

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-not-for-production",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "pharmflow-test",
	})
}

func authedRouter(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("", RequireAuth(jwtManager))
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": callerID(c), "role": callerRole(c)})
	})

	managed := authed.Group("", RequireScheduleManager())
	managed.POST("/windows", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	return router
}

func tokenFor(t *testing.T, jwtManager *auth.JWTManager, role domain.Role) string {
	t.Helper()
	pair, err := jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: uuid.New(),
		Email:  "staff@pharmflow.test",
		Role:   role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestRequireAuth(t *testing.T) {
	jwtManager := testJWTManager()
	router := authedRouter(jwtManager)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer " + tokenFor(t, jwtManager, domain.RolePharmacist), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	jwtManager := testJWTManager()
	router := authedRouter(jwtManager)

	pair, err := jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: uuid.New(),
		Role:   domain.RolePharmacist,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireScheduleManager(t *testing.T) {
	jwtManager := testJWTManager()
	router := authedRouter(jwtManager)

	tests := []struct {
		role       domain.Role
		wantStatus int
	}{
		{role: domain.RoleAdmin, wantStatus: http.StatusCreated},
		{role: domain.RolePharmacist, wantStatus: http.StatusCreated},
		{role: domain.RoleAssistant, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/windows", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtManager, tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
