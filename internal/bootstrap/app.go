package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/cv"
	"cvmaker-backend/internal/jobposting"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/llm/gemini"
	"cvmaker-backend/internal/profile"
	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/server"
	"cvmaker-backend/internal/shared/storage/db"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ProfileRepo    profile.Repo
	ProfileService *profile.Service
	Extractor      jobposting.Extractor
	LLM            llm.Client
	CvService      *cv.Service

	ProfileHandler *profile.Handler
	CvHandler      *cv.Handler
	JobHandler     *jobposting.Handler
	ChatHandler    *llm.Handler
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Build wires repositories, clients, services, handlers and the router.
// Outside production every external dependency degrades gracefully so the
// API can run with nothing but a profile in memory.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo profile.Repo
	if sqlDB != nil {
		repo = &profile.PGRepo{DB: sqlDB}
	} else {
		repo = profile.NewMemoryRepo()
	}

	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("build gemini client: %w", err)
		}
		llmClient = client
	} else {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required in production")
		}
		log.Printf("GEMINI_API_KEY not set, generation endpoints will fail")
		llmClient = llm.PlaceholderClient{}
	}

	var extractor jobposting.Extractor
	if cfg.ApifyToken != "" {
		client, err := jobposting.NewClient(cfg.ApifyToken)
		if err != nil {
			return nil, fmt.Errorf("build apify client: %w", err)
		}
		extractor = client
	} else {
		log.Printf("APIFY_TOKEN not set, URL extraction is disabled")
	}

	profileSvc := &profile.Service{Repo: repo}
	cvSvc := &cv.Service{
		Profiles:     repo,
		Extractor:    extractor,
		LLM:          llmClient,
		DefaultModel: cfg.GeminiModel,
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		ProfileRepo:    repo,
		ProfileService: profileSvc,
		Extractor:      extractor,
		LLM:            llmClient,
		CvService:      cvSvc,
		ProfileHandler: profile.NewHandler(profileSvc),
		CvHandler:      cv.NewHandler(cvSvc),
		ChatHandler:    llm.NewHandler(llmClient),
	}
	handlers := []server.RouteRegistrar{app.ProfileHandler, app.CvHandler, app.ChatHandler}
	if extractor != nil {
		app.JobHandler = jobposting.NewHandler(extractor)
		handlers = append(handlers, app.JobHandler)
	}
	app.Router = server.NewRouter(cfg, handlers...)
	return app, nil
}

// buildDB connects and migrates when DATABASE_URL is set. Outside production
// a connection failure falls back to the in-memory repository.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil, nil
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.Env == "production" {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil, nil
	}
	return sqlDB, nil
}
