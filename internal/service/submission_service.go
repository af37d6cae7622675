package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"issuemap/internal/archive"
	"issuemap/internal/credstore"
	"issuemap/internal/eval"
	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
)

// SubmissionResult is what the trainee sees after one evaluate-and-persist
// cycle. Persisted is false when the verdict could not be written back to the
// credential store; the verdict itself is still returned.
type SubmissionResult struct {
	Feedback   string `json:"feedback"`
	ArchiveURL string `json:"archive_url,omitempty"`
	Persisted  bool   `json:"persisted"`
}

// SubmissionService runs the strict pipeline: evaluate, then best-effort
// archive, then persist. An evaluation failure aborts everything; an archive
// failure is swallowed; a persistence failure is reported alongside the
// result.
type SubmissionService struct {
	store    credstore.Store
	archiver archive.Archiver
	engine   *eval.Engine
	prompt   string
	cache    *expirable.LRU[string, string]
	now      func() time.Time
}

func NewSubmissionService(store credstore.Store, archiver archive.Archiver, engine *eval.Engine, prompt string) *SubmissionService {
	// Identical re-submissions within the TTL skip the second model round
	// trip; archiving and persistence still run.
	cache := expirable.NewLRU[string, string](256, nil, 2*time.Hour)
	return &SubmissionService{
		store:    store,
		archiver: archiver,
		engine:   engine,
		prompt:   prompt,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, username string, sub *model.Submission) (*SubmissionResult, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("username", username),
		zap.String("filename", sub.Filename),
		zap.String("mime_type", sub.MIMEType),
		zap.Int("size", len(sub.Data)),
	)

	cacheKey := evalCacheKey(s.prompt, sub.Data)
	feedback, cached := s.cache.Get(cacheKey)
	if cached {
		logger.Info("evaluation served from cache")
	} else {
		text, err := s.engine.Evaluate(ctx, s.prompt, eval.Image{MIMEType: sub.MIMEType, Data: sub.Data})
		if err != nil {
			logger.Error("evaluation failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", appErr.ErrEvaluationFailed, err)
		}
		feedback = text
		s.cache.Add(cacheKey, text)
		logger.Info("evaluation completed", zap.Int("feedback_len", len(text)))
	}

	result := &SubmissionResult{Feedback: feedback, Persisted: true}

	archiveKey := buildArchiveKey(username, s.now(), sub.Filename)
	link, err := s.archiver.Archive(ctx, archiveKey, sub.MIMEType, sub.Data)
	if err != nil {
		// Archival is best-effort; its unavailability must never block the
		// feedback from being shown.
		logger.Warn("archive failed, continuing without link", zap.Error(err))
	} else {
		result.ArchiveURL = link
	}

	if err := s.store.SetFeedback(ctx, username, feedback); err != nil {
		logger.Error("failed to persist feedback",
			zap.Error(fmt.Errorf("%w: %v", appErr.ErrPersistenceFailed, err)))
		result.Persisted = false
	}
	return result, nil
}

func buildArchiveKey(username string, now time.Time, filename string) string {
	return fmt.Sprintf("%s_%s_%s", username, now.Format("20060102_150405"), filename)
}

func evalCacheKey(prompt string, image []byte) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write(image)
	return hex.EncodeToString(h.Sum(nil))
}
