package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Prateeks16/interview-pilot/internal/config"
	"github.com/Prateeks16/interview-pilot/internal/domain/fiber/handler"
	"github.com/Prateeks16/interview-pilot/internal/logger"
	"github.com/Prateeks16/interview-pilot/internal/middleware"
	"github.com/Prateeks16/interview-pilot/internal/model"
	"github.com/Prateeks16/interview-pilot/internal/repository"
	"github.com/Prateeks16/interview-pilot/internal/service"
	"github.com/Prateeks16/interview-pilot/internal/usecase"
	"github.com/Prateeks16/interview-pilot/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog, err := logger.New(appConfig.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(zlog)

	interviewRepo := repository.NewInterviewRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	postingRepo := repository.NewJobPostingRepository(db)

	gemini, err := service.NewGeminiService(ctx, zlog)
	if err != nil {
		zlog.Fatal("gemini init failed", zap.Error(err))
	}
	generator := service.NewQuestionGeneratorService(gemini)
	scorerConfig := config.LoadScorerConfig()
	scorer := service.NewScorerService(scorerConfig, zlog)

	workerConfig := config.LoadWorkerConfig()
	runner := worker.NewGenerationRunner(taskRepo, interviewRepo, generator, workerConfig.QueueSize, zlog)
	runner.Start(ctx, workerConfig.Workers)

	sweeper := worker.NewEvaluationSweeper(evaluationRepo, workerConfig.JobTTL, workerConfig.SweepInterval, zlog)
	go sweeper.Run(ctx)

	sessionUC := usecase.NewSessionUsecase(sessionRepo, interviewRepo, zlog)
	evaluationUC := usecase.NewEvaluationUsecase(evaluationRepo, sessionRepo, scorer, scorerConfig, zlog)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, runner, zlog)
	questionUC := usecase.NewQuestionUsecase(interviewRepo, runner, zlog)
	postingUC := usecase.NewJobPostingUsecase(postingRepo, interviewRepo, gemini, zlog)

	handler.NewInterviewHandler(interviewUC, "").RegisterRoutes(app)
	handler.NewQuestionHandler(questionUC).RegisterRoutes(app)
	handler.NewSessionHandler(sessionUC).RegisterRoutes(app)
	handler.NewEvaluationHandler(evaluationUC).RegisterRoutes(app)
	handler.NewTaskHandler(runner).RegisterRoutes(app)
	handler.NewJobPostingHandler(postingUC).RegisterRoutes(app)

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func connectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Interview{},
		&model.Question{},
		&model.Session{},
		&model.Answer{},
		&model.EvaluationJob{},
		&model.PerformanceReview{},
		&model.GenerationTask{},
		&model.JobPosting{},
	)
	if err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
