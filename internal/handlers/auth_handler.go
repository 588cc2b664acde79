package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"prepmaster/internal/models"
	"prepmaster/internal/repository"
	"prepmaster/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users *repository.UserRepository
}

func NewAuthHandler(users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Login creates the user record, stores it as the current user and issues a
// session token. There is no password; this is a single-user prep app, not
// an authentication system.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		TargetExam string `json:"targetExam" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid login request")
		return
	}

	exam := models.ExamType(req.TargetExam)
	switch exam {
	case models.ExamJEE, models.ExamNEET, models.ExamOlympiad:
	default:
		utils.BadRequestResponse(c, "Unknown target exam")
		return
	}

	user := &models.User{
		ID:         utils.GenerateID(),
		Name:       req.Name,
		Email:      fmt.Sprintf("%s@example.com", strings.ReplaceAll(strings.ToLower(req.Name), " ", ".")),
		TargetExam: exam,
		CreatedAt:  time.Now(),
	}

	// Losing the stored record only loses history continuity; the login
	// itself still succeeds.
	if err := h.Users.SaveCurrentUser(context.Background(), user); err != nil {
		log.Printf("failed to persist current user: %v", err)
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to issue token", err)
		return
	}

	utils.SuccessResponse(c, "Logged in", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout removes the current-user record.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Users.DeleteCurrentUser(context.Background()); err != nil {
		log.Printf("failed to delete current user: %v", err)
	}
	utils.SuccessResponse(c, "Logged out", nil)
}

// CurrentUser returns the stored current-user record, read at startup by
// the presentation layer.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.Users.GetCurrentUser(context.Background())
	if err != nil {
		utils.NotFoundResponse(c, "No user logged in")
		return
	}
	utils.SuccessResponse(c, "Current user", user)
}
