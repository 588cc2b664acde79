package handlers

import (
	"context"
	"errors"
	"net/http"

	"prepmaster/internal/engine"
	"prepmaster/internal/models"
	"prepmaster/internal/service"
	"prepmaster/utils"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

// StartTest generates questions and opens a session. Generation never hard
// fails; when the fallback set was served the response carries a notice the
// client shows as "Failed to start test" while the flow continues.
func (h *TestHandler) StartTest(c *gin.Context) {
	var req struct {
		Subject    string `json:"subject" binding:"required"`
		Chapter    string `json:"chapter" binding:"required"`
		Difficulty string `json:"difficulty"`
		Mode       string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid start request")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(models.DifficultyMedium)
	}
	if req.Mode == "" {
		req.Mode = "timed-test"
	}

	userID := c.GetString("userID")
	started, err := h.Service.StartTest(
		context.Background(),
		userID,
		models.Subject(req.Subject),
		req.Chapter,
		models.Difficulty(req.Difficulty),
		req.Mode,
	)
	switch {
	case errors.Is(err, service.ErrUnknownMode):
		utils.BadRequestResponse(c, "Unknown test mode")
		return
	case errors.Is(err, service.ErrUserHasSession):
		utils.ErrorResponse(c, http.StatusConflict, "Submit or abandon the active test first", err)
		return
	case err != nil:
		utils.InternalErrorResponse(c, "Failed to start test", err)
		return
	}

	message := "Test started"
	if started.FallbackNotice {
		message = "Failed to start test"
	}
	utils.CreatedResponse(c, message, started)
}

// SelectOption records an answer. Invalid option indexes and unknown
// question ids are rejected without touching the session.
func (h *TestHandler) SelectOption(c *gin.Context) {
	token := c.Param("token")
	var req struct {
		QuestionID  string `json:"question_id" binding:"required"`
		OptionIndex *int   `json:"option_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid answer format")
		return
	}
	h.respondIntent(c, h.Service.SelectOption(token, req.QuestionID, *req.OptionIndex), "Answer recorded")
}

// ToggleReview flips the review flag on a question.
func (h *TestHandler) ToggleReview(c *gin.Context) {
	token := c.Param("token")
	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid review format")
		return
	}
	h.respondIntent(c, h.Service.ToggleReview(token, req.QuestionID), "Review mark toggled")
}

// Navigate moves the cursor by a delta, clamping at the edges.
func (h *TestHandler) Navigate(c *gin.Context) {
	token := c.Param("token")
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid navigation format")
		return
	}
	h.respondIntent(c, h.Service.Navigate(token, req.Delta), "Moved")
}

// Status reports the live session for polling clients.
func (h *TestHandler) Status(c *gin.Context) {
	status, err := h.Service.Status(c.Param("token"))
	if err != nil {
		utils.NotFoundResponse(c, "Session not found")
		return
	}
	utils.SuccessResponse(c, "Session status", status)
}

// Submit terminates the session and returns the scored result.
func (h *TestHandler) Submit(c *gin.Context) {
	result, err := h.Service.Submit(context.Background(), c.Param("token"))
	if err != nil {
		utils.NotFoundResponse(c, "Session not found")
		return
	}
	utils.SuccessResponse(c, "Test submitted", result)
}

// Abandon discards the session without a result.
func (h *TestHandler) Abandon(c *gin.Context) {
	if err := h.Service.Abandon(c.Param("token")); err != nil {
		utils.NotFoundResponse(c, "Session not found")
		return
	}
	utils.SuccessResponse(c, "Test abandoned", nil)
}

func (h *TestHandler) respondIntent(c *gin.Context, err error, message string) {
	switch {
	case err == nil:
		utils.SuccessResponse(c, message, nil)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, engine.ErrNoSession):
		utils.NotFoundResponse(c, "Session not found")
	case errors.Is(err, engine.ErrInvalidInput):
		utils.BadRequestResponse(c, "Invalid intent arguments")
	default:
		utils.InternalErrorResponse(c, "Intent failed", err)
	}
}
