package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/cache"
	"github.com/SAP-F-2025/scorecard-service/internal/config"
	"github.com/SAP-F-2025/scorecard-service/internal/document"
	"github.com/SAP-F-2025/scorecard-service/internal/handlers"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/SAP-F-2025/scorecard-service/internal/services"
	"github.com/SAP-F-2025/scorecard-service/internal/utils"
	"github.com/SAP-F-2025/scorecard-service/internal/validator"
	"github.com/SAP-F-2025/scorecard-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engineCfg, err := cfg.Scoring.Engine()
	if err != nil {
		logger.LogError(err, "Invalid scoring configuration")
		os.Exit(1)
	}
	engine, err := scoring.NewEngine(engineCfg)
	if err != nil {
		logger.LogError(err, "Failed to build scoring engine")
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialise database")
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	v := validator.New()
	submissions := postgres.NewSubmissionPostgreSQL(db)

	answerKeys := services.NewAnswerKeyService(
		postgres.NewAnswerKeyPostgreSQL(db),
		cache.NewRedisCache(redisClient, slogger),
		cfg.AnswerKeyCacheTTL,
		v,
		publisher,
		slogger,
	)
	scoringService := services.NewScoringService(services.ScoringServiceDeps{
		Engine:       engine,
		Fetcher:      document.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchUserAgent),
		AnswerKeys:   answerKeys,
		Submissions:  submissions,
		Publisher:    publisher,
		Validator:    v,
		DefaultLevel: cfg.Scoring.DefaultLevel,
		Logger:       slogger,
	})
	exportService := services.NewExportService(submissions, engine.Layout(), cfg.Scoring.ExportSubjectOrder, slogger)

	manager := services.NewServiceManager(scoringService, answerKeys, exportService)
	router := handlers.NewHandlerManager(manager, logger).NewRouter()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Scorecard service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "HTTP server stopped")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
	logger.Info("Scorecard service stopped")
}
