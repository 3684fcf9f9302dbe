package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linguaflash/linguaflash/internal/api"
	"github.com/linguaflash/linguaflash/internal/config"
	"github.com/linguaflash/linguaflash/internal/db"
	"github.com/linguaflash/linguaflash/internal/importer"
	"github.com/linguaflash/linguaflash/internal/jobs"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/repository/sqlite"
	"github.com/linguaflash/linguaflash/internal/services"
	"github.com/linguaflash/linguaflash/internal/srs"
	"github.com/linguaflash/linguaflash/internal/worker"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("invalid configuration: " + err.Error())
	}

	log, err := logger.Init(cfg.LogLevel, cfg.DevMode)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("LinguaFlash server starting",
		zap.String("addr", cfg.Addr),
		zap.String("db_path", cfg.DBPath),
		zap.String("log_level", cfg.LogLevel))

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	wordRepo := sqlite.NewWordRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	lessonRepo := sqlite.NewLessonRepository(database.DB)
	quizRepo := sqlite.NewQuizRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	policy := srs.Policy{
		DefaultEase:     cfg.SRSDefaultEase,
		MinEase:         cfg.SRSMinEase,
		LearnedReps:     cfg.SRSLearnedReps,
		LearnedEase:     cfg.SRSLearnedEase,
		MasteredReps:    cfg.SRSMasteredReps,
		MasteredEase:    cfg.SRSMasteredEase,
		MaxIntervalDays: cfg.SRSMaxIntervalDays,
	}

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize, log)

	// Services
	vocabularyService := services.NewVocabularyService(reviewRepo, wordRepo, statsRepo, policy)
	wordService := services.NewWordService(wordRepo)
	lessonService := services.NewLessonService(lessonRepo, vocabularyService)
	quizService := services.NewQuizService(quizRepo, lessonService, vocabularyService)
	statsService := services.NewStatsService(statsRepo)
	importService := services.NewImportService(importer.New(wordRepo), importPool)

	scheduler := jobs.NewScheduler(statsRepo, quizRepo,
		cfg.DigestHourUTC, time.Duration(cfg.AttemptTTLHours)*time.Hour, log)

	srv := &api.Server{
		DB:         database.DB,
		Users:      userRepo,
		Words:      wordService,
		Vocabulary: vocabularyService,
		Lessons:    lessonService,
		Quizzes:    quizService,
		Stats:      statsService,
		Imports:    importService,
		ImportPool: importPool,
		Log:        log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)
	if err := scheduler.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()
	scheduler.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	importPool.Stop()
	log.Info("server stopped")
}
