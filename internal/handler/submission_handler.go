package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"issuemap/internal/model"
	"issuemap/internal/pkg/errcode"
	"issuemap/internal/pkg/response"
	"issuemap/internal/service"
)

type SubmissionHandler struct {
	submissions  *service.SubmissionService
	maxBytes     int64
	allowedMIMEs map[string]struct{}
}

func NewSubmissionHandler(submissions *service.SubmissionService, maxBytes int64, allowedMIMETypes []string) *SubmissionHandler {
	allowed := make(map[string]struct{}, len(allowedMIMETypes))
	for _, mt := range allowedMIMETypes {
		allowed[mt] = struct{}{}
	}
	return &SubmissionHandler{submissions: submissions, maxBytes: maxBytes, allowedMIMEs: allowed}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	mimeType := detectMIMEType(data)
	if _, ok := h.allowedMIMEs[mimeType]; !ok {
		response.Error(c, errcode.ErrInvalidFile, "unsupported image type")
		return
	}

	sub := &model.Submission{
		Filename: file.Filename,
		MIMEType: mimeType,
		Data:     data,
	}
	result, err := h.submissions.Submit(c.Request.Context(), getUsername(c), sub)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func detectMIMEType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}
