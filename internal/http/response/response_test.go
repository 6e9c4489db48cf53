package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
)

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondErr(c, err)
	return rec
}

func TestRespondErrUsesAPIError(t *testing.T) {
	rec := render(apierr.NotFound("Master Note not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Master Note not found","code":"not_found"}}`, rec.Body.String())
}

func TestRespondErrHidesInternalCause(t *testing.T) {
	rec := render(apierr.Internal("Database error saving note", errors.New("pq: connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Database error saving note","code":"internal_error"}}`, rec.Body.String())

	rec = render(errors.New("raw driver failure"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "raw driver failure")
}
