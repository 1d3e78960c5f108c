package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/unitask/unitask-api/internal/config"
	"github.com/unitask/unitask-api/internal/embedding"
	"github.com/unitask/unitask-api/internal/handlers"
	"github.com/unitask/unitask-api/internal/insights"
	"github.com/unitask/unitask-api/internal/logger"
	"github.com/unitask/unitask-api/internal/middleware"
	"github.com/unitask/unitask-api/internal/store"
	"github.com/unitask/unitask-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

const serviceName = "unitask-api"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for embedding API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("embed_model", cfg.EmbedModel),
		zap.Int("embed_dimensions", cfg.EmbedDimensions),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry tracing, if enabled
	var tracerEnabled bool
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerEnabled = true
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Session state: the task store lives for the process lifetime only
	taskStore := store.NewTaskStore()
	taskStore.SetLogger(zapLogger)

	// Embedding provider; without an API key the AI Insights view is
	// disabled but the rest of the service runs
	var provider embedding.Provider
	if cfg.OpenAIKey != "" {
		openaiProvider := embedding.NewOpenAIProviderWithLogger(
			cfg.OpenAIKey,
			cfg.EmbedBaseURL,
			cfg.EmbedModel,
			cfg.EmbedDimensions,
			zapLogger,
			debugMode,
		)
		provider = embedding.NewCache(openaiProvider, zapLogger)
		zapLogger.Info("embedding_provider_initialized")
	} else {
		zapLogger.Warn("openai_api_key_not_configured_ai_insights_disabled")
	}

	insightService := insights.NewService(provider, zapLogger)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskStore, zapLogger)
	dashboardHandler := handlers.NewDashboardHandler(taskStore, zapLogger)
	insightsHandler := handlers.NewInsightsHandler(insightService, zapLogger)
	healthChecker := handlers.NewHealthChecker(provider != nil)

	// Rate limiting store per config
	var rateLimitMW func(http.Handler) http.Handler
	if cfg.RateLimitStore == "redis" {
		rateLimitMW, err = middleware.RateLimitRedis(cfg.RateLimitRate, cfg.RedisURL)
	} else {
		rateLimitMW, err = middleware.RateLimit(cfg.RateLimitRate)
	}
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	// Router and middleware chain
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerEnabled {
		r.Use(otelmux.Middleware(serviceName))
		zapLogger.Info("otel_middleware_enabled")
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(handlers.MaxUploadSize))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Public routes
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", handlers.VersionInfo).Methods("GET")

	openAPIPath := filepath.Join("api", "openapi", "openapi.yaml")
	openAPIHandler := handlers.NewOpenAPIHandler(openAPIPath)
	openAPIHandler.RegisterRoutes(r)

	// API v1 routes
	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	dashboardRouter := apiRouter.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.Use(rateLimitMW)
	dashboardRouter.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	dashboardHandler.RegisterRoutes(dashboardRouter)

	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	tasksRouter.Use(rateLimitMW)
	tasksRouter.Use(middleware.ContentType)
	tasksRouter.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	taskHandler.RegisterRoutes(tasksRouter)

	// Analysis blocks on synchronous training, so it gets a longer timeout
	// and no JSON content-type requirement (multipart upload)
	insightsRouter := apiRouter.PathPrefix("/insights").Subrouter()
	insightsRouter.Use(rateLimitMW)
	insightsRouter.Use(middleware.Timeout(middleware.DefaultAnalyzeTimeout))
	insightsHandler.RegisterRoutes(insightsRouter)

	// Catch-all OPTIONS handler for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   middleware.DefaultAnalyzeTimeout + 30*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
