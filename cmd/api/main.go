package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/alinasir85/Jouster/internal/application"
	appanalysis "github.com/alinasir85/Jouster/internal/application/analysis"
	"github.com/alinasir85/Jouster/internal/config"
	domai "github.com/alinasir85/Jouster/internal/domain/ai"
	domain "github.com/alinasir85/Jouster/internal/domain/analysis"
	"github.com/alinasir85/Jouster/internal/domain/faults"
	aihttpjson "github.com/alinasir85/Jouster/internal/infra/ai/httpjson"
	ailocal "github.com/alinasir85/Jouster/internal/infra/ai/local"
	aiopenai "github.com/alinasir85/Jouster/internal/infra/ai/openai"
	memoryp "github.com/alinasir85/Jouster/internal/infra/db/memory"
	mysqlp "github.com/alinasir85/Jouster/internal/infra/db/mysql"
	postgresp "github.com/alinasir85/Jouster/internal/infra/db/postgres"
	"github.com/alinasir85/Jouster/internal/infra/httpserver"
	minioStore "github.com/alinasir85/Jouster/internal/infra/storage"
	"github.com/alinasir85/Jouster/internal/middleware"
	"github.com/alinasir85/Jouster/internal/nlp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// pick the persistence backend
	var repo domain.Repository
	var faultRepo faults.Repository
	checkers := map[string]middleware.HealthChecker{}
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewAnalysisRepository(db)
		faultRepo = mysqlp.NewFaultRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewAnalysisRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	default:
		log.Println("no database configured, using in-memory store")
		repo = memoryp.NewRepository()
	}

	// optional raw-text archive
	var archive domain.Archive
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init service
	svc := &appanalysis.Service{
		Repo:          repo,
		AI:            buildAIClient(cfg),
		Extractor:     nlp.NewExtractor(cfg.Analysis.KeywordCount),
		Faults:        faultRepo,
		Archive:       archive,
		Clock:         application.SystemClock{},
		MaxTextChars:  cfg.Analysis.MaxTextChars,
		RetryAttempts: uint(cfg.AI.MaxAttempts),
		RetryDelay:    time.Duration(cfg.AI.RetryDelayMS) * time.Millisecond,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.Server.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate))
	}
	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func buildAIClient(cfg *config.Config) domai.Client {
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	switch cfg.AI.Provider {
	case "compat":
		return aihttpjson.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, timeout)
	case "local":
		return ailocal.NewClient()
	default:
		if cfg.AI.APIKey == "" {
			log.Println("no API key configured, using local analyzer")
			return ailocal.NewClient()
		}
		return aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model, timeout)
	}
}
