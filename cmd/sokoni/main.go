package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sokoni-cloud/sokoni/internal/config"
	"github.com/sokoni-cloud/sokoni/internal/db"
	dbRedis "github.com/sokoni-cloud/sokoni/internal/db/redis"
	"github.com/sokoni-cloud/sokoni/internal/domain"
	logpkg "github.com/sokoni-cloud/sokoni/internal/logger"
	"github.com/sokoni-cloud/sokoni/internal/metrics"
	catalogrepo "github.com/sokoni-cloud/sokoni/internal/repository/catalog"
	"github.com/sokoni-cloud/sokoni/internal/repository/embcache"
	historyrepo "github.com/sokoni-cloud/sokoni/internal/repository/history"
	searchrepo "github.com/sokoni-cloud/sokoni/internal/repository/search"
	chiTransport "github.com/sokoni-cloud/sokoni/internal/transport/chi"
	openaiEmb "github.com/sokoni-cloud/sokoni/internal/transport/openai"
	cataloguc "github.com/sokoni-cloud/sokoni/internal/usecase/catalog"
	healthuc "github.com/sokoni-cloud/sokoni/internal/usecase/health"
	historyuc "github.com/sokoni-cloud/sokoni/internal/usecase/history"
	recommenduc "github.com/sokoni-cloud/sokoni/internal/usecase/recommend"
	searchuc "github.com/sokoni-cloud/sokoni/internal/usecase/search"
	"github.com/sokoni-cloud/sokoni/internal/version"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sokoni API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterCoreMetrics()

	// Build embedder chains
	baseEmbedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	docEmbedder := buildEmbedder(baseEmbedder, cfg.Embedding, cfg.Embedding.DocumentInstruction, store, logger)
	queryEmbedder := buildEmbedder(baseEmbedder, cfg.Embedding, cfg.Embedding.QueryInstruction, store, logger)
	logger.Info("Embedders created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Repositories
	vectorDim := cfg.Embedding.Dimensions
	catRepo := catalogrepo.New(store, cfg.Index.Name, vectorDim).
		WithHNSW(catalogrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		}).
		WithRefreshTimeout(time.Duration(cfg.Index.RefreshSec) * time.Second)
	histRepo := historyrepo.New(store)
	knnRepo := searchrepo.New(store, cfg.Index.Name)

	// Use case services
	catSvc := cataloguc.New(catRepo, cataloguc.NewNormalizer(docEmbedder, vectorDim))
	searchSvc := searchuc.New(knnRepo, queryEmbedder, vectorDim, cfg.Search.K, cfg.Search.NumCandidates)
	recommendSvc := recommenduc.New(knnRepo, histRepo, queryEmbedder, vectorDim, cfg.Recommend.K, cfg.Recommend.NumCandidates)
	histSvc := historyuc.New(histRepo)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(docEmbedder), store, catRepo.IndexName())

	// The index must exist before the first search or write.
	ensureCtx, cancelEnsure := context.WithTimeout(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second)
	defer cancelEnsure()
	if err := catSvc.EnsureIndex(ensureCtx); err != nil {
		logger.Fatal("Failed to ensure product index", zap.Error(err))
	}
	logger.Info("Product index ready", zap.String("index", catRepo.IndexName()))

	server := chiTransport.NewServer(catSvc, searchSvc, recommendSvc, histSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instruction.
func buildEmbedder(
	base domain.Embedder,
	cfg config.EmbeddingConfig,
	instruction string,
	store db.Store,
	logger *zap.Logger,
) domain.Embedder {
	embedder := base
	if store != nil {
		ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
		embedder = embcache.New(base, store, cfg.Model, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	// Instruction prefix goes outermost so the cache key includes it
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
