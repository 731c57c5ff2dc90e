package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pharmflow/pharmflow/internal/domain"
	"github.com/pharmflow/pharmflow/pkg/auth"
	"github.com/pharmflow/pharmflow/pkg/metrics"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "user_role"
)

// RequireAuth validates the bearer token and stores the caller's identity on
// the request context.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireScheduleManager restricts schedule and catalog mutations to roles
// allowed to manage them.
func RequireScheduleManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := callerRole(c)
		if !role.CanManageSchedules() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
			return
		}
		c.Next()
	}
}

// Observe records request counts, latency and in-flight gauge per route.
func Observe(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()

		c.Next()

		collector.InFlightGauge.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func callerID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func callerRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}
