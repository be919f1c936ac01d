package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/assessments"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/coverletters"
	"career-backend/internal/extract/docai"
	"career-backend/internal/insights"
	"career-backend/internal/llm"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/openai"
	"career-backend/internal/profiles"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/lock"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	gcsstore "career-backend/internal/shared/storage/object/gcs"
	"career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

const defaultOpenAIModel = "gpt-4o-mini"

// App holds shared dependencies for every process.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Tokens   *auth.Tokens
	Provider llm.Provider
	Locker   lock.Locker
	// Archive is nil when OBJECT_STORE=none.
	Archive object.Store
	// OCR is nil unless DOCUMENTAI_PROCESSOR is set.
	OCR *docai.OCR

	UsersService        *users.Service
	ProfilesService     *profiles.Service
	InsightsService     *insights.Service
	ResumesService      *resumes.Service
	CoverLettersService *coverletters.Service
	AssessmentsService  *assessments.Service

	// Scheduler is nil when the in-process schedule is disabled.
	Scheduler *insights.Scheduler

	closers []func() error
}

// Options tweak Build for callers that do not need every piece.
type Options struct {
	// DBOptions defaults to the server pool settings.
	DBOptions *db.Options
	// SkipMigrations leaves the schema untouched, e.g. for the migrate command.
	SkipMigrations bool
}

// Build connects storage, picks the text provider and wires services and routes.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
		Enabled:     cfg.TracingEnabled,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		telemetry.Warn("bootstrap.tracing_disabled", map[string]any{"error": err.Error()})
	}
	app.closers = append(app.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTracing(ctx)
	})

	sqlDB, err := buildDB(ctx, cfg, opts)
	if err != nil {
		app.Close()
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	app.Tokens, err = auth.NewTokens(cfg.JWTSecret, cfg.Env, cfg.TokenTTL)
	if err != nil {
		app.Close()
		return nil, err
	}

	if err := app.buildProvider(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildLocker(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildArchive(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildOCR(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildServices(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			telemetry.Warn("bootstrap.close_failed", map[string]any{"error": err.Error()})
		}
	}
	a.closers = nil
}

func buildDB(ctx context.Context, cfg config.Config, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	poolDefaults := db.DefaultServerOptions()
	if opts.DBOptions != nil {
		poolDefaults = *opts.DBOptions
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(poolDefaults))
	if err == nil && !opts.SkipMigrations {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func (a *App) buildProvider(ctx context.Context) error {
	var (
		next llm.Provider
		name = a.Config.LLMProvider
	)
	switch name {
	case "openai":
		model := a.Config.LLMModel
		if strings.TrimSpace(model) == "" {
			model = defaultOpenAIModel
		}
		client, err := openai.NewClient(a.Config.OpenAIAPIKey, model)
		if err != nil {
			return a.placeholderOr(err)
		}
		next = client
	case "gemini":
		client, err := gemini.NewClient(ctx, a.Config.GeminiAPIKey, a.Config.LLMModel)
		if err != nil {
			return a.placeholderOr(err)
		}
		a.closers = append(a.closers, client.Close)
		next = client
	default:
		next = llm.Placeholder{}
	}
	a.Provider = llm.Instrumented{Next: next, Name: name}
	return nil
}

// placeholderOr tolerates missing provider credentials outside production.
func (a *App) placeholderOr(err error) error {
	if !a.Config.IsDevLike() {
		return fmt.Errorf("configure %s provider: %w", a.Config.LLMProvider, err)
	}
	telemetry.Warn("bootstrap.llm_placeholder", map[string]any{
		"provider": a.Config.LLMProvider,
		"error":    err.Error(),
	})
	a.Provider = llm.Instrumented{Next: llm.Placeholder{}, Name: "placeholder"}
	return nil
}

func (a *App) buildLocker(ctx context.Context) error {
	if strings.TrimSpace(a.Config.RedisAddr) == "" {
		a.Locker = lock.Local{}
		return nil
	}
	r, err := lock.NewRedis(ctx, a.Config.RedisAddr, a.Config.RedisPassword)
	if err != nil {
		if !a.Config.IsDevLike() {
			return fmt.Errorf("connect redis: %w", err)
		}
		telemetry.Warn("bootstrap.local_lock", map[string]any{"error": err.Error()})
		a.Locker = lock.Local{}
		return nil
	}
	a.closers = append(a.closers, r.Close)
	a.Locker = r
	return nil
}

func (a *App) buildArchive(ctx context.Context) error {
	switch a.Config.ObjectStore {
	case "local":
		a.Archive = local.New(a.Config.LocalStoreDir)
	case "s3":
		store, err := s3store.New(ctx, a.Config.AWSRegion, a.Config.S3Bucket, a.Config.S3Prefix, a.Config.S3KMSKeyID)
		if err != nil {
			if !a.Config.IsDevLike() {
				return fmt.Errorf("object store: %w", err)
			}
			telemetry.Warn("bootstrap.archive_disabled", map[string]any{"error": err.Error()})
			return nil
		}
		a.Archive = store
	case "gcs":
		store, err := gcsstore.New(ctx, a.Config.GCSBucket, a.Config.GCSPrefix)
		if err != nil {
			if !a.Config.IsDevLike() {
				return fmt.Errorf("object store: %w", err)
			}
			telemetry.Warn("bootstrap.archive_disabled", map[string]any{"error": err.Error()})
			return nil
		}
		a.closers = append(a.closers, store.Close)
		a.Archive = store
	}
	return nil
}

func (a *App) buildOCR(ctx context.Context) error {
	processor := strings.TrimSpace(a.Config.DocumentAIProcessor)
	if processor == "" {
		return nil
	}
	ocr, err := docai.New(ctx, processor)
	if err != nil {
		if !a.Config.IsDevLike() {
			return fmt.Errorf("ocr: %w", err)
		}
		telemetry.Warn("bootstrap.ocr_disabled", map[string]any{"error": err.Error()})
		return nil
	}
	a.closers = append(a.closers, ocr.Close)
	a.OCR = ocr
	return nil
}

func (a *App) buildServices() error {
	var (
		userRepo       users.Repo
		profileRepo    profiles.Repo
		insightRepo    insights.Repo
		resumeRepo     resumes.Repo
		coverRepo      coverletters.Repo
		assessmentRepo assessments.Repo
	)
	if a.DB != nil {
		userRepo = &users.PGRepo{DB: a.DB}
		profileRepo = &profiles.PGRepo{DB: a.DB}
		insightRepo = &insights.PGRepo{DB: a.DB}
		resumeRepo = &resumes.PGRepo{DB: a.DB}
		coverRepo = &coverletters.PGRepo{DB: a.DB}
		assessmentRepo = &assessments.PGRepo{DB: a.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		insightRepo = insights.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		coverRepo = coverletters.NewMemoryRepo()
		assessmentRepo = assessments.NewMemoryRepo()
	}

	a.UsersService = users.NewService(userRepo, auth.NewPasswords(a.Config.BcryptCost), a.Tokens)
	a.ProfilesService = profiles.NewService(profileRepo, nil)
	a.InsightsService = insights.NewService(insightRepo, a.ProfilesService, a.Provider)
	if a.Config.SweepConcurrency > 0 {
		a.InsightsService.SweepConcurrency = a.Config.SweepConcurrency
	}
	a.ProfilesService.Warmer = a.InsightsService
	a.ResumesService = resumes.NewService(resumeRepo, a.ProfilesService, a.Provider)
	if a.Archive != nil {
		a.ResumesService.Archive = a.Archive
	}
	if a.OCR != nil {
		a.ResumesService.OCR = a.OCR
	}
	a.CoverLettersService = coverletters.NewService(coverRepo, a.ProfilesService, a.Provider)
	a.AssessmentsService = assessments.NewService(assessmentRepo, a.ProfilesService, a.Provider)

	if a.Config.SchedulerEnabled() {
		sched, err := insights.NewScheduler(a.Config.SweepSchedule, a.InsightsService, a.Locker)
		if err != nil {
			return err
		}
		a.Scheduler = sched
	}

	deps := server.RouterDeps{
		Config:       a.Config,
		Tokens:       a.Tokens,
		Health:       health.NewService(nil),
		Users:        users.NewHandler(a.UsersService),
		Profiles:     profiles.NewHandler(a.ProfilesService),
		Insights:     insights.NewHandler(a.InsightsService),
		Resumes:      resumes.NewHandler(a.ResumesService),
		CoverLetters: coverletters.NewHandler(a.CoverLettersService),
		Assessments:  assessments.NewHandler(a.AssessmentsService),
		RateLimiter:  middleware.NewRateLimiter(nil),
		GoogleAuth: googleauth.NewGoogleService(
			a.Config.GoogleClientID,
			a.Config.GoogleClientSecret,
			a.Config.GoogleRedirectURL,
			a.Config.UIRedirectURL,
			a.UsersService,
			a.Tokens,
		),
	}
	if a.DB != nil {
		deps.Health = health.NewService(a.DB)
	}
	a.Router = server.NewRouter(deps)
	return nil
}
