package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/config"
	"github.com/voxhire/voxhire-api/internal/database"
	"github.com/voxhire/voxhire-api/internal/events"
	"github.com/voxhire/voxhire-api/internal/handler"
	"github.com/voxhire/voxhire-api/internal/middleware"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/internal/router"
	"github.com/voxhire/voxhire-api/internal/service"
	"github.com/voxhire/voxhire-api/internal/worker"
	"github.com/voxhire/voxhire-api/pkg/ai"
	"github.com/voxhire/voxhire-api/pkg/report"
	"github.com/voxhire/voxhire-api/pkg/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Position{}, &models.Candidate{}, &models.Interview{}, &models.InterviewQuestion{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}
	publisher := events.NewPublisher(natsConn, "voxhire.interview", logger)

	aiClient, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai client: %v", err)
	}

	transcriber := speech.NewService(
		speech.NewWhisperCppEngine(cfg.WhisperBinary, cfg.WhisperModelDir),
		cfg.WhisperModelSize,
		cfg.TranscribeLanguage,
		cfg.TranscribeTimeout,
		logger,
	)

	htmlRenderer, err := report.NewHTMLRenderer()
	if err != nil {
		log.Fatalf("failed to build report renderer: %v", err)
	}
	renderer := report.NewPDFRenderer(htmlRenderer, cfg.PDFBinary, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	positionRepo := repository.NewPositionRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	gradingService := service.NewGradingService(questionRepo, aiClient, cfg.PrimaryModel, cfg.AICallTimeout, logger)
	graderPool := worker.NewGraderPool(gradingService, cfg.GraderWorkers, cfg.GraderQueueSize, logger)
	snapshotCache := service.NewSnapshotCache(redisClient, cfg.SnapshotCacheTTL, logger)

	questionService := service.NewQuestionGenerationService(
		interviewRepo, questionRepo, aiClient,
		cfg.PrimaryModel, cfg.QuestionCount, cfg.AICallTimeout,
		publisher, snapshotCache, logger,
	)
	reportService := service.NewReportSynthesisService(
		interviewRepo, questionRepo, aiClient,
		cfg.ModelChain(), renderer, cfg.ReportDir, cfg.AICallTimeout,
		publisher, snapshotCache, logger,
	)
	sessionService := service.NewInterviewSessionService(
		interviewRepo, questionRepo, transcriber, graderPool,
		publisher, snapshotCache, logger,
	)
	positionService := service.NewPositionService(positionRepo, validate, logger)
	candidateService := service.NewCandidateService(candidateRepo, positionRepo, validate, logger)
	adminInterviewService := service.NewAdminInterviewService(interviewRepo, candidateRepo, validate, logger)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	graderPool.Start(workerCtx)

	scheduler := worker.NewScheduler(cfg.PollInterval, []worker.Job{
		{Name: "question_generation", Run: questionService.RunOnce},
		{Name: "report_synthesis", Run: reportService.RunOnce},
	}, logger)
	scheduler.Start(workerCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    64 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, CORSOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		PositionHandler:       handler.NewPositionHandler(positionService, logger),
		CandidateHandler:      handler.NewCandidateHandler(candidateService, logger),
		AdminInterviewHandler: handler.NewAdminInterviewHandler(adminInterviewService, logger),
		InterviewHandler:      handler.NewInterviewHandler(sessionService, logger),
		PipelineHandler:       handler.NewPipelineHandler(questionService, reportService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, func() {
		stopWorkers()
		scheduler.Stop()
		graderPool.Stop()
	})
}

func waitForShutdown(app *fiber.App, stopBackground func()) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	stopBackground()
	log.Println("server stopped")
}
