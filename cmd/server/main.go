package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/evaldesk/evaldesk/internal/cache"
	"github.com/evaldesk/evaldesk/internal/config"
	"github.com/evaldesk/evaldesk/internal/domain/fiber/handler"
	"github.com/evaldesk/evaldesk/internal/middleware"
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/repository"
	"github.com/evaldesk/evaldesk/internal/seed"
	"github.com/evaldesk/evaldesk/internal/service"
	"github.com/evaldesk/evaldesk/internal/usecase"
	"github.com/evaldesk/evaldesk/pkg/logger"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	if err := logger.Init(appConfig.LogLevel, appConfig.LogFormat); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := config.LoadAuthConfig().Validate(); err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 20 * 1024 * 1024,
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
			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
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
	app.Use(middleware.RateLimiter(200, 1*time.Minute))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	db := connectDB()
	if err := seed.StatusOptions(db); err != nil {
		logger.Fatal("failed to seed status options", zap.Error(err))
	}

	statusCache, err := cache.NewStatusCache(ctx)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if statusCache != nil {
		defer statusCache.Close()
		logger.Info("evaluation status cache enabled")
	}

	orgRepo := repository.NewOrganizationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	chatRepo := repository.NewChatSessionRepository(db)
	docTypeRepo := repository.NewDocTypeRepository(db)
	criteriaRepo := repository.NewCriteriaRepository(db)
	statusOptionRepo := repository.NewStatusOptionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	grader, embedder := buildLLM(ctx)

	evaluationUC := usecase.NewEvaluationUsecase(
		evaluationRepo, docTypeRepo, criteriaRepo, statusOptionRepo,
		grader, embedder, statusCache,
	)

	api := app.Group("/api/v1", middleware.RequireAuth())
	handler.NewOrganizationHandler(orgRepo).RegisterRoutes(api)
	handler.NewProjectHandler(projectRepo).RegisterRoutes(api)
	handler.NewChatHandler(chatRepo).RegisterRoutes(api)
	handler.NewDocTypeHandler(docTypeRepo, evaluationUC).RegisterRoutes(api)
	handler.NewCriteriaHandler(criteriaRepo).RegisterRoutes(api)
	handler.NewStatusOptionHandler(statusOptionRepo).RegisterRoutes(api)
	handler.NewEvaluationHandler(evaluationUC, "").RegisterRoutes(api)

	logger.Info("server starting",
		zap.String("port", appConfig.Port),
		zap.String("env", appConfig.Env),
		zap.String("llm_provider", grader.Name()),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// buildLLM constructs the configured grading provider. Gemini doubles
// as the embedder; with Anthropic as grader, embeddings still come from
// Gemini when a key is present and are skipped otherwise.
func buildLLM(ctx context.Context) (service.Grader, service.Embedder) {
	llmConfig := config.LoadLLMConfig()

	var gemini *service.GeminiService
	if llmConfig.GeminiAPIKey != "" {
		var err error
		gemini, err = service.NewGeminiService(ctx)
		if err != nil {
			logger.Fatal("failed to init gemini", zap.Error(err))
		}
	}

	switch llmConfig.Provider {
	case "anthropic":
		anthropicService, err := service.NewAnthropicService()
		if err != nil {
			logger.Fatal("failed to init anthropic", zap.Error(err))
		}
		if gemini == nil {
			logger.Warn("no gemini key configured, embeddings disabled")
			return anthropicService, nil
		}
		return anthropicService, gemini
	default:
		if gemini == nil {
			logger.Fatal("GEMINI_API_KEY required for the gemini provider")
		}
		return gemini, gemini
	}
}

func connectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal("could not get database instance", zap.Error(err))
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
		&model.Organization{},
		&model.Project{},
		&model.ProjectFavorite{},
		&model.ChatSession{},
		&model.DocType{},
		&model.CriteriaSet{},
		&model.CriteriaItem{},
		&model.StatusOption{},
		&model.Evaluation{},
	)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	return db
}
