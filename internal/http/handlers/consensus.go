package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/services"
)

type ConsensusHandler struct {
	consensus services.ConsensusService
}

func NewConsensusHandler(consensus services.ConsensusService) *ConsensusHandler {
	return &ConsensusHandler{consensus: consensus}
}

// POST /consensus/process
// body: { "subject_id": "...", "chapter": 2, "note_ids": ["..."] }
func (h *ConsensusHandler) Process(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		SubjectID uuid.UUID   `json:"subject_id"`
		Chapter   *int        `json:"chapter"`
		NoteIDs   []uuid.UUID `json:"note_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.BadRequest("Invalid request body"))
		return
	}
	if req.SubjectID == uuid.Nil {
		response.RespondErr(c, apierr.BadRequest("subject_id is required"))
		return
	}
	res, err := h.consensus.Process(c.Request.Context(), services.ConsensusInput{
		UserID:    userID,
		SubjectID: req.SubjectID,
		Chapter:   req.Chapter,
		NoteIDs:   req.NoteIDs,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /consensus/master/latest
func (h *ConsensusHandler) Latest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	mn, err := h.consensus.GetLatestMasterNote(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, mn)
}

// GET /consensus/master/:subject_id/:chapter
func (h *ConsensusHandler) Get(c *gin.Context) {
	userID, subjectID, chapter, ok := h.masterKey(c)
	if !ok {
		return
	}
	mn, err := h.consensus.GetMasterNote(c.Request.Context(), userID, subjectID, chapter)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, mn)
}

// GET /consensus/master/:subject_id/:chapter/pdf
func (h *ConsensusHandler) PDF(c *gin.Context) {
	userID, subjectID, chapter, ok := h.masterKey(c)
	if !ok {
		return
	}
	pdf, filename, err := h.consensus.RenderMasterNotePDF(c.Request.Context(), userID, subjectID, chapter)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ConsensusHandler) masterKey(c *gin.Context) (uuid.UUID, uuid.UUID, int, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, 0, false
	}
	subjectID, ok := parseUUID(c, c.Param("subject_id"), "subject_id")
	if !ok {
		return uuid.Nil, uuid.Nil, 0, false
	}
	chapter, ok := parseInt(c, c.Param("chapter"), "chapter", 0)
	if !ok {
		return uuid.Nil, uuid.Nil, 0, false
	}
	return userID, subjectID, chapter, true
}
