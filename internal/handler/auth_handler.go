package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"issuemap/internal/pkg/errcode"
	"issuemap/internal/pkg/response"
	"issuemap/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	// No trimming: the store comparison is exact and case-sensitive.
	if req.Username == "" || req.Password == "" {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":        token,
		"username":     user.Username,
		"has_feedback": user.HasFeedback(),
	})
}

// Logout exists for the SPA's logout button; the token is stateless, the
// client just discards it.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"ok": true})
}
