package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"issuemap/internal/config"
	"issuemap/internal/credstore"
	"issuemap/internal/eval"
	"issuemap/internal/handler"
	"issuemap/internal/middleware"
	"issuemap/internal/model"
	"issuemap/internal/service"
)

var testJWTSecret = []byte("test-secret")

// pngMagic makes http.DetectContentType report image/png.
var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Evaluate(ctx context.Context, model, prompt string, image eval.Image) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

type stubArchiver struct {
	link string
	err  error
}

func (a *stubArchiver) Archive(ctx context.Context, key, mimeType string, data []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.link, nil
}

func setupRouter(t *testing.T, provider *stubProvider, archiver *stubArchiver) (http.Handler, *credstore.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := credstore.NewMemoryStore()
	store.Seed(
		model.UserRecord{Username: "alice", Password: "pw1"},
		model.UserRecord{Username: "bob", Password: "pw2", FeedbackResult: "## previous verdict"},
	)

	authService := service.NewAuthService(store, testJWTSecret, time.Hour, 24*time.Hour)
	submissionService := service.NewSubmissionService(store, archiver, eval.NewEngine(provider, "test-model", 0), "rubric")
	feedbackService := service.NewFeedbackService(store)

	deps := handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService),
		Submissions: handler.NewSubmissionHandler(submissionService, 10*1024*1024, []string{"image/png", "image/jpeg"}),
		Feedback:    handler.NewFeedbackHandler(feedbackService),
		Properties:  handler.NewPropertiesHandler(config.Properties{Title: "training"}),
		JWTSecret:   testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine, store
}

func multipartImage(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
