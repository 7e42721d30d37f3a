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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnify-app/learnify-api/internal/config"
	"github.com/learnify-app/learnify-api/internal/database"
	"github.com/learnify-app/learnify-api/internal/handler"
	"github.com/learnify-app/learnify-api/internal/middleware"
	"github.com/learnify-app/learnify-api/internal/models"
	"github.com/learnify-app/learnify-api/internal/repository"
	"github.com/learnify-app/learnify-api/internal/router"
	"github.com/learnify-app/learnify-api/internal/service"
	cloud "github.com/learnify-app/learnify-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Submission{}, &models.SubmissionFeedback{}, &models.SubmissionVote{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	storage, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	submissionService := service.NewSubmissionService(submissionRepo, studentRepo, validate, storage, cfg.MaxUploadMB, cache, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, submissionRepo, studentRepo, validate, logger)
	voteService := service.NewVoteService(voteRepo, submissionRepo, studentRepo, validate, cache, logger)
	projectBoardService := service.NewProjectBoardService(scoreRepo, storage, cache, cfg.LeaderboardCacheTTL, cfg.VoteWeights, logger)

	submissionHandler := handler.NewSubmissionHandler(submissionService, validate, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	voteHandler := handler.NewVoteHandler(voteService, logger)
	projectBoardHandler := handler.NewProjectBoardHandler(projectBoardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SubmissionHandler:   submissionHandler,
		FeedbackHandler:     feedbackHandler,
		VoteHandler:         voteHandler,
		ProjectBoardHandler: projectBoardHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
