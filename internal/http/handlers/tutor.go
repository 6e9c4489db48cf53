package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/http/response"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/services"
)

type TutorHandler struct {
	tutor services.TutorService
}

func NewTutorHandler(tutor services.TutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

// POST /rag/tutor
// body: { "subject_id": "...", "chapter": 1, "question": "...", "mode": "chat|quiz|flashcards" }
func (h *TutorHandler) Ask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		SubjectID *uuid.UUID `json:"subject_id"`
		Chapter   int        `json:"chapter"`
		Question  string     `json:"question"`
		Mode      string     `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.BadRequest("Invalid request body"))
		return
	}
	answer, err := h.tutor.Ask(c.Request.Context(), services.TutorInput{
		UserID:    userID,
		SubjectID: req.SubjectID,
		Chapter:   req.Chapter,
		Question:  req.Question,
		Mode:      req.Mode,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answer": answer})
}

// GET /rag/quiz/latest
func (h *TutorHandler) LatestQuiz(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	q, err := h.tutor.LatestQuiz(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, q)
}
