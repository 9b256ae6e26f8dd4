package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auditkit/question-analyzer/internal/application"
	"github.com/auditkit/question-analyzer/internal/application/analyzer"
	"github.com/auditkit/question-analyzer/internal/config"
	"github.com/auditkit/question-analyzer/internal/domain/ai"
	"github.com/auditkit/question-analyzer/internal/domain/questions"
	geminiClient "github.com/auditkit/question-analyzer/internal/infra/ai/gemini"
	openaiClient "github.com/auditkit/question-analyzer/internal/infra/ai/openai"
	mysqlp "github.com/auditkit/question-analyzer/internal/infra/db/mysql"
	postgresp "github.com/auditkit/question-analyzer/internal/infra/db/postgres"
	"github.com/auditkit/question-analyzer/internal/infra/httpserver"
	"github.com/auditkit/question-analyzer/internal/infra/pdftext"
	minioStore "github.com/auditkit/question-analyzer/internal/infra/storage"
	"github.com/auditkit/question-analyzer/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.AI.APIKey == "" {
		log.Println("no AI API key configured; running in heuristic-only mode")
	}

	ctx := context.Background()

	// optional analysis history
	var history questions.Repository
	var db *sql.DB
	if cfg.Database.Host != "" {
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
			if err != nil {
				log.Fatalf("postgres connect error: %v", err)
			}
			history = postgresp.NewAnalysisRepository(db)
		default:
			db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
			if err != nil {
				log.Fatalf("mysql connect error: %v", err)
			}
			history = mysqlp.NewAnalysisRepository(db)
		}
		defer db.Close()
	}

	// optional PDF archive
	var artifacts questions.ArtifactStore
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
		artifacts = store
	}

	// AI backend; an empty key makes either client report unavailable,
	// which keeps the whole process on the heuristic path.
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	var client ai.Client
	switch cfg.AI.Provider {
	case "openai":
		client = openaiClient.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.FallbackModel,
			cfg.AI.MaxQuestions, cfg.AI.TextLimit, timeout)
	default:
		client = geminiClient.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.FallbackModel,
			cfg.AI.MaxQuestions, cfg.AI.TextLimit, timeout)
	}

	svc := analyzer.NewService(client, history, artifacts, application.SystemClock{})

	checkers := map[string]middleware.HealthChecker{}
	if db != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	handler := httpserver.NewRouter(svc, pdftext.New(), httpserver.Options{
		StaticDir:      cfg.Server.StaticDir,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate),
		Health:         middleware.HealthHandler(checkers),
		AuthKeys:       cfg.Auth.Keys,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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
