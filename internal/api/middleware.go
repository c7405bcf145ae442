package api

import (
	"campus-route-finder/internal/api/handlers"
	"campus-route-finder/internal/platform/obs"
	"campus-route-finder/internal/ports"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestLogger logs end-to-end request duration and response size and tags
// the request context with an id for obs timings.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)
		c.Request = c.Request.WithContext(obs.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		logrus.WithFields(logrus.Fields{
			"req_id": reqID,
			"method": c.Request.Method,
			"path":   c.Request.URL.RequestURI(),
			"status": c.Writer.Status(),
			"bytes":  c.Writer.Size(),
			"dur_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	}
}

// requireUser resolves the bearer token and stores the student id for handlers.
func requireUser(identity ports.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		u, err := identity.UserFromToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logrus.WithError(err).Debug("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(handlers.UserIDKey, u.ID)
		c.Next()
	}
}
