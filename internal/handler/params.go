package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"events-web-app/internal/apperror"
	"events-web-app/internal/dto"
	"events-web-app/internal/middleware"
)

const (
	defaultPageIndex = 1
	defaultPageSize  = 10
)

// queryID parses a required id from the query string
func queryID(c *gin.Context, name string) (uuid.UUID, error) {
	return dto.ParseID(name, c.Query(name))
}

// bodyID reads a bare JSON string id, the shape delete endpoints accept
func bodyID(c *gin.Context) (uuid.UUID, error) {
	var raw string
	if err := c.ShouldBindJSON(&raw); err != nil {
		return uuid.Nil, apperror.NewValidationError("body must be a JSON string id")
	}
	return dto.ParseID("id", raw)
}

// queryInt reads an optional integer, range checks belong to the service
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("field '%s' must be an integer", name))
	}
	return n, nil
}

// actorID returns the authenticated caller for audit records
func actorID(c *gin.Context) *uuid.UUID {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return nil
	}
	return &id
}
