package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/config"
	"github.com/avverma/fitrag/internal/db"
	"github.com/avverma/fitrag/internal/embedcache"
	"github.com/avverma/fitrag/internal/handler"
	"github.com/avverma/fitrag/internal/ingest"
	"github.com/avverma/fitrag/internal/job"
	"github.com/avverma/fitrag/internal/knowledgestore"
	"github.com/avverma/fitrag/internal/middleware"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/rag"
	"github.com/avverma/fitrag/internal/repo"
	"github.com/avverma/fitrag/internal/schedule"
	"github.com/avverma/fitrag/internal/service"
	"github.com/avverma/fitrag/internal/vectorstore"
)

func main() {
	var configPath string
	var overwrite bool

	rootCmd := &cobra.Command{
		Use:   "fitrag",
		Short: "fitness and diet plan backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the api server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := setup(configPath)
			if err != nil {
				return err
			}
			defer database.Close()
			return runServer(cfg, database)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "ingest the knowledge base into the vector index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := setup(configPath)
			if err != nil {
				return err
			}
			defer database.Close()
			return runIngest(cfg, database, overwrite)
		},
	}
	ingestCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	ingestCmd.Flags().BoolVar(&overwrite, "overwrite", false, "clear existing vectors before ingesting")

	rootCmd.AddCommand(runCmd, ingestCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath string) (*config.Config, *sql.DB, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logutil.Init(cfg.LogLevel)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	database, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, database, nil
}

// buildAI assembles the generator and embedder chains. The embedder is
// wrapped with an in-process LRU and the persistent db cache so repeat
// texts never hit the provider twice.
func buildAI(cfg *config.Config, cacheRepo *repo.EmbeddingCacheRepo) (*ai.Manager, error) {
	var generators []ai.GeneratorEntry
	for _, pc := range cfg.AI.Generators {
		provider, err := ai.NewProvider(pc.Provider, pc.Args)
		if err != nil {
			return nil, fmt.Errorf("init generator %s: %w", pc.Provider, err)
		}
		generators = append(generators, ai.GeneratorEntry{
			Name:      pc.Provider,
			Generator: ai.NewGenerator(provider, pc.Model),
		})
	}

	var embedders []ai.EmbedderEntry
	for _, pc := range cfg.AI.Embedders {
		provider, err := ai.NewEmbedProvider(pc.Provider, pc.Args)
		if err != nil {
			return nil, fmt.Errorf("init embedder %s: %w", pc.Provider, err)
		}
		embedders = append(embedders, ai.EmbedderEntry{
			Name:     pc.Provider,
			Embedder: ai.NewEmbedder(provider, pc.Model),
		})
	}

	embedder := ai.NewGroupEmbedder(embedders)
	if embedder != nil {
		embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.AI.CacheSize, time.Duration(cfg.AI.CacheTTLHours)*time.Hour)
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
	}
	return ai.NewManager(ai.NewGroupGenerator(generators), embedder, ai.ManagerConfig{
		TimeoutSeconds: cfg.AI.TimeoutSeconds,
	}), nil
}

func buildIngester(cfg *config.Config, index vectorstore.Index, mgr *ai.Manager) (*ingest.Ingester, error) {
	store, err := knowledgestore.New(cfg.Knowledge.Store)
	if err != nil {
		return nil, fmt.Errorf("init knowledge store: %w", err)
	}
	return ingest.NewIngester(store, index, mgr, cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap), nil
}

func runIngest(cfg *config.Config, database *sql.DB, overwrite bool) error {
	cacheRepo := repo.NewEmbeddingCacheRepo(database)
	mgr, err := buildAI(cfg, cacheRepo)
	if err != nil {
		return err
	}
	index, err := vectorstore.New(cfg.Vector, vectorstore.Deps{DB: database})
	if err != nil {
		return fmt.Errorf("init vector index: %w", err)
	}
	ingester, err := buildIngester(cfg, index, mgr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := ingester.IngestAll(ctx, overwrite)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("ingestion done",
		zap.Int("workouts", stats.WorkoutsProcessed),
		zap.Int("diets", stats.DietsProcessed),
		zap.Int("chunks", stats.TotalChunks))
	return nil
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logger := logutil.GetLogger(context.Background())
	logger.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("vector_index", cfg.Vector.Type),
		zap.String("knowledge_store", cfg.Knowledge.Store.Type))

	userRepo := repo.NewUserRepo(database)
	progressRepo := repo.NewProgressRepo(database)
	planRepo := repo.NewPlanRepo(database)
	cacheRepo := repo.NewEmbeddingCacheRepo(database)

	mgr, err := buildAI(cfg, cacheRepo)
	if err != nil {
		return err
	}
	index, err := vectorstore.New(cfg.Vector, vectorstore.Deps{DB: database})
	if err != nil {
		return fmt.Errorf("init vector index: %w", err)
	}
	ingester, err := buildIngester(cfg, index, mgr)
	if err != nil {
		return err
	}

	retriever := rag.NewRetriever(index, mgr, cfg.Knowledge.TopK)
	chain := rag.NewChain(retriever, mgr)

	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), jwtTTL)
	userService := service.NewUserService(userRepo)
	progressService := service.NewProgressService(progressRepo, userRepo)
	planService := service.NewPlanService(chain, planRepo, userRepo, progressService)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Progress:  handler.NewProgressHandler(progressService),
		Plans:     handler.NewPlanHandler(planService),
		RAG:       handler.NewRAGHandler(chain, retriever, userService, progressService, ingester, index),
		Health:    handler.NewHealthHandler(database),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.CORSOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)
	handler.RegisterRoutes(engine.Group("/api/v1"), deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler()
	if cfg.Schedule.KnowledgeSyncSpec != "" {
		if err := scheduler.AddJob(job.NewKnowledgeSyncJob(ingester), cfg.Schedule.KnowledgeSyncSpec); err != nil {
			return err
		}
	}
	if cfg.Schedule.CacheCleanupSpec != "" {
		if err := scheduler.AddJob(job.NewCacheCleanupJob(cacheRepo, cfg.Schedule.CacheKeepDays), cfg.Schedule.CacheCleanupSpec); err != nil {
			return err
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: engine,
	}
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
