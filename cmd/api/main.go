package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/handler"
	chathandler "github.com/steven0413/ChatBetTechnicalAssessment/internal/handler/chat"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/ai"
	chatservice "github.com/steven0413/ChatBetTechnicalAssessment/internal/service/chat"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/session"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/sports"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	baseLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer baseLogger.Sync()
	logger := baseLogger.Sugar()

	sessionStore := session.NewStore(cfg.Session, logger)
	sessionStore.StartSweeper(ctx)

	sportsClient := sports.NewClient(cfg.Sports, logger)

	// Without a Gemini key the assistant still runs: keyword extraction and
	// canned replies only.
	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, cfg.AI, logger)
		if err != nil {
			logger.Warnw("failed to initialize gemini client, continuing without model", "error", err)
			aiService = nil
		} else {
			logger.Infow("gemini client initialized", "model", cfg.AI.Model)
		}
	} else {
		logger.Info("GEMINI_API_KEY not configured, model disabled")
	}

	keywordDetector := intent.NewKeywordDetector()
	detector := ai.NewEntityDetector(aiService, keywordDetector, logger)

	var generator chatservice.Generator
	if aiService != nil {
		generator = aiService
	}
	chatService := chatservice.NewService(sessionStore, sportsClient, detector, generator, logger)

	chatHandler := chathandler.New(chatService, sportsClient, logger)
	router := handler.NewRouter(chatHandler, cfg.Server.StaticDir, cfg.Server.ChatRateLimit)

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *zap.SugaredLogger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Infow("chatbot backend listening", "addr", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
