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

	"github.com/careerlift/resume-coach/backend/internal/config"
	"github.com/careerlift/resume-coach/backend/internal/handler"
	speechmodel "github.com/careerlift/resume-coach/backend/internal/model/speech"
	"github.com/careerlift/resume-coach/backend/internal/service/ai"
	"github.com/careerlift/resume-coach/backend/internal/service/interview"
	"github.com/careerlift/resume-coach/backend/internal/service/session"
	"github.com/careerlift/resume-coach/backend/internal/service/speech"
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

	if !cfg.AI.Enabled() {
		log.Fatal("ark credentials not configured; the interviewer cannot run without a completion model")
	}
	aiSvc, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	completion := ai.NewRetryingCompletion(aiSvc, cfg.Interview.RetryAttempts, cfg.Interview.RetryBaseDelay)
	log.Println("AI service initialized successfully")

	if !cfg.Speech.Enabled {
		log.Fatal("speech credentials not configured; set SPEECH_APP_ID and SPEECH_ACCESS_TOKEN")
	}
	speechSvc := speech.NewService(&speechmodel.Config{
		AppID:       cfg.Speech.AppID,
		AccessToken: cfg.Speech.AccessToken,
		Voice:       cfg.Speech.Voice,
		Speed:       cfg.Speech.Speed,
		Volume:      cfg.Speech.Volume,
		Language:    cfg.Speech.Language,
		Timeout:     cfg.Speech.Timeout,
	})
	log.Println("Speech service initialized successfully")

	store := session.NewStore()
	interviewSvc := interview.NewService(store, completion, speechSvc, cfg.Interview)

	sweeper := interview.NewSweeper(store, cfg.Interview.SweepInterval, cfg.Interview.IdleThreshold)
	go sweeper.Run(ctx)

	router := handler.NewRouter(interviewSvc)
	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("resume-coach backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
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
