package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
	"github.com/yungbote/hivemind-backend/internal/services"
)

const maxUploadBytes = 20 << 20

type IngestionHandler struct {
	log       *logger.Logger
	ingestion services.IngestionService
}

func NewIngestionHandler(log *logger.Logger, ingestion services.IngestionService) *IngestionHandler {
	return &IngestionHandler{log: log.With("handler", "IngestionHandler"), ingestion: ingestion}
}

// POST /ingestion/upload (multipart: file, subject_id, chapter)
func (h *IngestionHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		response.RespondErr(c, apierr.BadRequest("Invalid multipart form"))
		return
	}
	subjectID, ok := parseUUID(c, c.PostForm("subject_id"), "subject_id")
	if !ok {
		return
	}
	chapter, ok := parseInt(c, c.PostForm("chapter"), "chapter", 0)
	if !ok {
		return
	}
	if chapter <= 0 {
		response.RespondErr(c, apierr.BadRequest("chapter is required"))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondErr(c, apierr.BadRequest("file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondErr(c, apierr.BadRequest("Could not read uploaded file"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.RespondErr(c, apierr.BadRequest("Could not read uploaded file"))
		return
	}
	if len(data) > maxUploadBytes {
		response.RespondErr(c, apierr.BadRequest("Uploaded file is too large"))
		return
	}

	note, err := h.ingestion.Upload(c.Request.Context(), services.UploadInput{
		UserID:    userID,
		SubjectID: subjectID,
		Chapter:   chapter,
		Filename:  fh.Filename,
		MimeType:  fh.Header.Get("Content-Type"),
		Data:      data,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"id": note.ID, "content": note.Content})
}
