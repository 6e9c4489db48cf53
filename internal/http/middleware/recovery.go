package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

// Recovery turns a handler panic into the standard error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("Handler panic", "path", c.Request.URL.Path, "panic", recovered)
		response.RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, errors.New("Internal server error"))
		c.Abort()
	})
}
