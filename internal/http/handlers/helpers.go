package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/ctxutil"
)

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	id := ctxutil.UserID(c.Request.Context())
	if id == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, apierr.Unauthorized("Not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}

func parseUUID(c *gin.Context, raw, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		response.RespondErr(c, apierr.BadRequest("Invalid "+field))
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID treats an empty value as absent.
func parseOptionalUUID(c *gin.Context, raw, field string) (*uuid.UUID, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	id, ok := parseUUID(c, raw, field)
	if !ok {
		return nil, false
	}
	return &id, true
}

func parseInt(c *gin.Context, raw, field string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondErr(c, apierr.BadRequest("Invalid "+field))
		return 0, false
	}
	return n, true
}
