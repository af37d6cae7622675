package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"issuemap/internal/archive"
	"issuemap/internal/config"
	"issuemap/internal/credstore"
	"issuemap/internal/eval"
	"issuemap/internal/handler"
	"issuemap/internal/middleware"
	"issuemap/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "issuemap",
		Short: "issuemap training backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run issuemap server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("cred_store", cfg.CredStore.Type),
		zap.String("archive", cfg.Archive.Type),
		zap.String("eval_provider", cfg.Eval.Provider),
		zap.Int("session_window_hours", cfg.SessionWindowHours),
	)

	store, err := credstore.New(cfg.CredStore)
	if err != nil {
		return fmt.Errorf("init cred store: %w", err)
	}
	archiver, err := archive.New(cfg.Archive)
	if err != nil {
		return fmt.Errorf("init archiver: %w", err)
	}
	provider, err := eval.NewProvider(cfg.Eval.Provider, cfg.Eval.Data)
	if err != nil {
		return fmt.Errorf("init eval provider: %w", err)
	}
	prompt, err := eval.LoadPrompt(cfg.PromptPath)
	if err != nil {
		return err
	}
	engine := eval.NewEngine(provider, cfg.Eval.Model, time.Duration(cfg.Eval.TimeoutSeconds)*time.Second)

	authService := service.NewAuthService(
		store,
		[]byte(cfg.JWTSecret),
		time.Hour*time.Duration(cfg.JWTTTLHours),
		time.Hour*time.Duration(cfg.SessionWindowHours),
	)
	submissionService := service.NewSubmissionService(store, archiver, engine, prompt)
	feedbackService := service.NewFeedbackService(store)

	deps := handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService),
		Submissions: handler.NewSubmissionHandler(submissionService, cfg.MaxUploadBytes, cfg.AllowedMIMETypes),
		Feedback:    handler.NewFeedbackHandler(feedbackService),
		Properties:  handler.NewPropertiesHandler(cfg.Properties),
		JWTSecret:   []byte(cfg.JWTSecret),
	}

	engineSrv, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engineSrv.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
