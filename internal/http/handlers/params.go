package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calegray/commerce-backend/internal/http/response"
)

// uuidParam parses a path parameter as a UUID and responds 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func includeDeletedQuery(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("include_deleted", "false"))
	if err != nil {
		return false
	}
	return v
}

// timeQuery parses an optional RFC 3339 query parameter. A missing parameter
// yields (nil, true); a malformed one responds 400.
func timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_timestamp", err)
		return nil, false
	}
	utc := t.UTC()
	return &utc, true
}
