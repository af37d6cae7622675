package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "issuemap/internal/pkg/errors"
	"issuemap/internal/pkg/response"
	"issuemap/internal/service"
)

type FeedbackHandler struct {
	feedback *service.FeedbackService
}

func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	text, err := h.feedback.Get(c.Request.Context(), getUsername(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"feedback": text})
}

func (h *FeedbackHandler) Export(c *gin.Context) {
	username := getUsername(c)
	text, err := h.feedback.Get(c.Request.Context(), username)
	if err != nil {
		handleError(c, err)
		return
	}
	if text == "" {
		handleError(c, appErr.ErrNotFound)
		return
	}
	html, err := h.feedback.RenderHTML(username, text)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
