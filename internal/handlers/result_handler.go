package handlers

import (
	"context"

	"prepmaster/internal/explain"
	"prepmaster/internal/gemini"
	"prepmaster/internal/models"
	"prepmaster/internal/repository"
	"prepmaster/utils"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Results *repository.ResultRepository
	AI      *gemini.Client
}

func NewResultHandler(results *repository.ResultRepository, ai *gemini.Client) *ResultHandler {
	return &ResultHandler{Results: results, AI: ai}
}

// History returns the caller's result history, newest first.
func (h *ResultHandler) History(c *gin.Context) {
	userID := c.GetString("userID")
	results, err := h.Results.FindByUser(context.Background(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load history", err)
		return
	}
	utils.SuccessResponse(c, "Result history", results)
}

// reviewQuestion is one entry of the detailed review: the question, the
// user's answer and the explanation split into sections.
type reviewQuestion struct {
	Question   models.Question  `json:"question"`
	UserAnswer *int             `json:"user_answer,omitempty"`
	Correct    bool             `json:"correct"`
	Sections   explain.Sections `json:"sections"`
}

// GetResult returns a stored result with its per-question review payload.
func (h *ResultHandler) GetResult(c *gin.Context) {
	result, err := h.Results.FindByID(context.Background(), c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Result not found")
		return
	}

	review := make([]reviewQuestion, 0, len(result.Questions))
	for _, q := range result.Questions {
		entry := reviewQuestion{
			Question: q,
			Sections: explain.Parse(q.Explanation),
		}
		if answer, ok := result.UserAnswers[q.ID]; ok {
			a := answer
			entry.UserAnswer = &a
			entry.Correct = answer == q.CorrectOptionIndex
		}
		review = append(review, entry)
	}

	utils.SuccessResponse(c, "Result", gin.H{
		"result":   result,
		"review":   review,
		"accuracy": result.Accuracy(),
		"skipped":  result.SkippedCount(),
	})
}

// Analyze produces the AI performance summary for a scored attempt. The
// provider substitutes a fixed encouragement payload on failure, so this
// endpoint never reports a generation error.
func (h *ResultHandler) Analyze(c *gin.Context) {
	var req struct {
		Score      int      `json:"score"`
		MaxScore   int      `json:"max_score" binding:"required"`
		Subject    string   `json:"subject" binding:"required"`
		WeakTopics []string `json:"weak_topics"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid analysis request")
		return
	}

	analysis := h.AI.GenerateAnalysis(context.Background(), req.Score, req.MaxScore, models.Subject(req.Subject), req.WeakTopics)
	utils.SuccessResponse(c, "Performance analysis", analysis)
}
