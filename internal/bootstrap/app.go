package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/llm/gemini"
	"resume-parser/internal/llm/openai"
	"resume-parser/internal/parsing"
	"resume-parser/internal/runs"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/server"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/storage/object"
	localstore "resume-parser/internal/shared/storage/object/local"
	s3store "resume-parser/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	RunsRepo     runs.Repo
	LLM          llm.Client
	Provider     string
	Model        string
	ParseService *parsing.Service
	ParseHandler *parsing.Handler
	RunsHandler  *runs.Handler

	closers []func() error
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	if cfg.ArchiveUploads {
		store, err := buildStore(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Store = store
	}

	client, provider, model, err := BuildLLM(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if closer, ok := client.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}
	app.LLM = llm.WithRetries(client, cfg.LLMTransportRetries)
	app.Provider = provider
	app.Model = model

	buildServices(app)

	handlers := []server.RouteRegistrar{app.ParseHandler}
	if app.RunsHandler != nil {
		handlers = append(handlers, app.RunsHandler)
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:   app.Config,
		Handlers: handlers,
	})

	return app, nil
}

// Close releases the database pool and provider clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory parse run log")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory parse run log: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory parse run log: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildLLM returns the configured provider client with its provider name and
// model. Without an API key dev environments get a placeholder that fails
// every call.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, string, string, error) {
	switch cfg.LLMProvider {
	case "gemini":
		model := cfg.LLMModel
		if model == "" {
			model = gemini.DefaultModel
		}
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return placeholder(cfg, "gemini", model, "GEMINI_API_KEY")
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, model)
		if err != nil {
			return nil, "", "", err
		}
		return client, "gemini", client.Model(), nil
	default:
		model := cfg.LLMModel
		if model == "" {
			model = openai.DefaultModel
		}
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return placeholder(cfg, "openai", model, "OPENAI_API_KEY")
		}
		client, err := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   model,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			return nil, "", "", err
		}
		return client, "openai", client.Model(), nil
	}
}

func placeholder(cfg config.Config, provider, model, keyName string) (llm.Client, string, string, error) {
	if !isDevLike(cfg.Env) {
		return nil, "", "", fmt.Errorf("%s is required for LLM_PROVIDER=%s", keyName, provider)
	}
	log.Printf("bootstrap: %s empty; parse requests will fail with a provider error", keyName)
	return llm.PlaceholderClient{}, provider, model, nil
}

func buildServices(app *App) {
	var runsRepo runs.Repo
	if app.DB != nil {
		runsRepo = &runs.PGRepo{DB: app.DB}
	} else {
		runsRepo = runs.NewMemoryRepoWithCapacity(app.Config.RunLogCapacity)
	}

	svc := parsing.NewService(extract.New(), app.LLM, runsRepo)
	svc.Provider = app.Provider
	svc.Model = app.Model
	svc.MinTextChars = app.Config.MinTextChars
	svc.LLMTimeout = app.Config.LLMTimeout
	svc.RepairAttempts = app.Config.LLMRepairAttempts
	if app.Store != nil {
		svc.Archive = &parsing.Archiver{Store: app.Store}
	}

	limiter := middleware.RateLimit(middleware.RateLimitRule{
		Rate:  app.Config.RateLimitParseRPS,
		Burst: app.Config.RateLimitParseBurst,
	}, nil)

	app.RunsRepo = runsRepo
	app.ParseService = svc
	app.ParseHandler = parsing.NewHandler(svc, app.Config.MaxUploadBytes, limiter)
	app.RunsHandler = buildRunsHandler(app.Config, runsRepo)
}

// buildRunsHandler exposes the run log behind RUNS_API_TOKEN when set, openly
// in dev and not at all otherwise. Run records carry uploaded file names.
func buildRunsHandler(cfg config.Config, repo runs.Repo) *runs.Handler {
	switch {
	case strings.TrimSpace(cfg.RunsAPIToken) != "":
		return runs.NewHandler(repo, middleware.BearerToken(strings.TrimSpace(cfg.RunsAPIToken)))
	case isDevLike(cfg.Env):
		return runs.NewHandler(repo)
	default:
		log.Printf("bootstrap: RUNS_API_TOKEN empty; parse run endpoints disabled")
		return nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
