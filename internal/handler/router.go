package handler

import (
	"github.com/gin-gonic/gin"

	"issuemap/internal/middleware"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Submissions *SubmissionHandler
	Feedback    *FeedbackHandler
	Properties  *PropertiesHandler
	JWTSecret   []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)
	api.GET("/properties", deps.Properties.Get)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/feedback", deps.Feedback.Get)
	authGroup.GET("/feedback/export", deps.Feedback.Export)
	authGroup.POST("/submissions", deps.Submissions.Submit)
}
