package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"issuemap/internal/credstore"
)

// FeedbackService returns the stored evaluation markdown and renders the
// printable HTML export of it.
type FeedbackService struct {
	store credstore.Store
	md    goldmark.Markdown
}

func NewFeedbackService(store credstore.Store) *FeedbackService {
	return &FeedbackService{
		store: store,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

func (s *FeedbackService) Get(ctx context.Context, username string) (string, error) {
	user, err := s.store.Get(ctx, username)
	if err != nil {
		return "", err
	}
	return user.FeedbackResult, nil
}

// RenderHTML converts already-fetched feedback markdown into the printable
// export document. It does not touch the store; callers pass the text they
// got from Get.
func (s *FeedbackService) RenderHTML(username, feedback string) (string, error) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(feedback), &body); err != nil {
		return "", fmt.Errorf("render feedback: %w", err)
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	out.WriteString(fmt.Sprintf("<title>Feedback - %s</title>\n", username))
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.String(), nil
}
