package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"issuemap/internal/middleware"
	"issuemap/internal/pkg/errcode"
	appErr "issuemap/internal/pkg/errors"
	"issuemap/internal/pkg/response"
)

// loginFailedMessage deliberately does not distinguish a wrong password from
// an expired window in the user-facing text.
const loginFailedMessage = "ID or password incorrect"

func getUsername(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUsernameKey)
	username, _ := value.(string)
	return username
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("username", getUsername(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrInvalidCredentials):
		response.Error(c, errcode.ErrUnauthorized, loginFailedMessage)
	case errors.Is(err, appErr.ErrSessionExpired):
		response.Error(c, errcode.ErrSessionExpired, loginFailedMessage)
	case errors.Is(err, appErr.ErrEvaluationFailed):
		response.Error(c, errcode.ErrEvaluationFailed, err.Error())
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
