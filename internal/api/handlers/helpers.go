package handlers

import (
	"campus-route-finder/internal/domain"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserIDKey is the gin context key holding the authenticated student id.
const UserIDKey = "user_id"

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// Map repository errors to a response. Unknown errors are logged and hidden.
func writeRepoError(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"op":   op,
		"path": c.Request.URL.Path,
	}).Error("request failed")
	writeError(c, http.StatusInternalServerError, "internal server error")
}

// allowed reports whether the authenticated user, if any, may read owner's data.
func allowed(c *gin.Context, owner int64) bool {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return true
	}
	id, _ := v.(int64)
	return id == owner
}
