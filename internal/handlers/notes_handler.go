package handlers

import (
	"context"

	"prepmaster/internal/gemini"
	"prepmaster/internal/models"
	"prepmaster/utils"

	"github.com/gin-gonic/gin"
)

type NotesHandler struct {
	AI *gemini.Client
}

func NewNotesHandler(ai *gemini.Client) *NotesHandler {
	return &NotesHandler{AI: ai}
}

// ViewNotes generates chapter study notes. Closing the notes view is purely
// a client-side affordance; there is no server state to tear down.
func (h *NotesHandler) ViewNotes(c *gin.Context) {
	subject := c.Query("subject")
	chapter := c.Query("chapter")
	if subject == "" || chapter == "" {
		utils.BadRequestResponse(c, "subject and chapter are required")
		return
	}

	notes := h.AI.GenerateNotes(context.Background(), models.Subject(subject), chapter)
	utils.SuccessResponse(c, "Chapter notes", notes)
}
