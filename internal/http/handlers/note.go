package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/services"
)

type NoteHandler struct {
	notes services.NoteService
}

func NewNoteHandler(notes services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// GET /notes/all?subject_id=&chapter=
func (h *NoteHandler) ListAll(c *gin.Context) {
	subjectID, ok := parseUUID(c, c.Query("subject_id"), "subject_id")
	if !ok {
		return
	}
	chapter, ok := parseInt(c, c.Query("chapter"), "chapter", 0)
	if !ok {
		return
	}
	out, err := h.notes.ListAll(c.Request.Context(), subjectID, chapter)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /notes/my?subject_id=
func (h *NoteHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subjectID, ok := parseOptionalUUID(c, c.Query("subject_id"), "subject_id")
	if !ok {
		return
	}
	out, err := h.notes.ListMine(c.Request.Context(), userID, subjectID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}
