package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"mindwell/internal/cache"
	"mindwell/internal/config"
	"mindwell/internal/logger"
	"mindwell/internal/repository"
	"mindwell/internal/service"
	"mindwell/internal/transport/rest"
	"mindwell/internal/transport/ws"
)

const startupTimeout = 10 * time.Second

// App owns the process-wide connections and the HTTP handler built on them
type App struct {
	Mongo   *mongo.Client
	DB      *mongo.Database
	Redis   *redis.Client
	Hub     *ws.Hub
	Handler http.Handler

	Users       repository.UserRepo
	Assessments repository.AssessmentRepo
}

// Connect opens MongoDB and Redis and checks both are reachable
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	a := &App{
		Mongo: mongoClient,
		DB:    mongoClient.Database(cfg.Mongo.Database),
		Redis: rdb,
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(pingCtx)
	g.Go(func() error {
		if err := mongoClient.Ping(gctx, nil); err != nil {
			return fmt.Errorf("ping mongo: %w", err)
		}
		log.Info("connected to MongoDB", "database", cfg.Mongo.Database)
		return nil
	})
	g.Go(func() error {
		if err := rdb.Ping(gctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		log.Info("connected to Redis", "addr", cfg.Redis.Addr)
		return nil
	})
	if err := g.Wait(); err != nil {
		a.Close(context.Background())
		return nil, err
	}

	a.Users = repository.NewUserRepo(a.DB)
	a.Assessments = repository.NewAssessmentRepo(a.DB)
	return a, nil
}

// EnsureIndexes creates the collection indexes the repositories rely on
func (a *App) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return repository.EnsureUserIndexes(gctx, a.DB) })
	g.Go(func() error { return repository.EnsureAssessmentIndexes(gctx, a.DB) })
	return g.Wait()
}

// New connects the stores and wires services, the alert hub and the router
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a, err := Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := a.EnsureIndexes(ctx); err != nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	// Caches
	draftCache := cache.NewDraftCache(a.Redis)
	reportCache := cache.NewReportCache(a.Redis)
	sessionCache := cache.NewSessionCache(a.Redis)

	// Narrative generation
	if cfg.AI.IsEnabled() {
		log.Info("narrative provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model, "timeout", cfg.AI.Timeout())
	} else {
		log.Warn("no AI API key set, using mock narrative generator")
	}
	generator := service.NewGenerator(cfg.AI, log)
	analyzer := service.NewAnalyzer(generator, cfg.AI.Model, cfg.AI.Timeout(), log)

	// Services
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authSvc := service.NewAuthService(a.Users, sessionCache, cfg.Auth.JWTSecret, tokenTTL, log)
	assessmentSvc := service.NewAssessmentService(a.Assessments, draftCache, reportCache, analyzer, log)
	reportSvc := service.NewReportService(a.Assessments, a.Users, reportCache, log)

	a.Hub = ws.NewHub(log)
	assessmentSvc.SetBroadcaster(a.Hub)

	a.Handler = rest.NewRouter(&rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		WSHub:             a.Hub,
		Log:               log,
		CORSOrigins:       cfg.Server.CORSOrigins,
	})
	return a, nil
}

// Close stops the hub and releases the store connections
func (a *App) Close(ctx context.Context) {
	if a.Hub != nil {
		a.Hub.Stop()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Mongo != nil {
		_ = a.Mongo.Disconnect(ctx)
	}
}
