package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/jobs"
	"inkwell/internal/middleware"
	"inkwell/internal/personas"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/service/llm"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"debug", cfg.Debug,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	postRepo := postgres.NewPostRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	agentRepo := postgres.NewAgentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Built-in reader personas (embedded config)
	builtins, err := personas.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load built-in personas: %v", err)
	}
	logger.Info("built-in personas loaded", "count", builtins.Len())

	// Setup LLM providers and the comment generator
	providerRegistry, err := llm.SetupProviders(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup LLM providers: %v", err)
	}
	generator := llm.NewGenerator(providerRegistry, cfg, logger)

	// Job scheduler
	jobRegistry := jobs.NewRegistry()
	scheduler := jobs.NewInProcessScheduler(jobRegistry, logger)

	// Create services
	postService := service.NewPostService(postRepo, commentRepo, agentRepo, builtins, scheduler, cfg, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, scheduler, logger)
	agentService := service.NewAgentService(agentRepo, commentRepo, txManager, logger)
	readerService := service.NewReaderService(postRepo, commentRepo, agentRepo, builtins, generator, commentService, logger)

	// Bind job bodies to their names
	if err := jobs.RegisterReaderJobs(jobRegistry, readerService); err != nil {
		log.Fatalf("Failed to register job handlers: %v", err)
	}

	// Create handlers
	postHandler := handler.NewPostHandler(postService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	agentHandler := handler.NewAgentHandler(agentService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", postHandler.HealthCheck)

	// Post routes
	mux.HandleFunc("GET /api/posts", postHandler.ListPosts)
	mux.HandleFunc("POST /api/posts", postHandler.CreatePost)
	mux.HandleFunc("GET /api/posts/by-slug/{slug}", postHandler.GetPostBySlug) // Must come before {id} route
	mux.HandleFunc("GET /api/posts/{id}", postHandler.GetPost)
	mux.HandleFunc("PATCH /api/posts/{id}", postHandler.UpdatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", postHandler.DeletePost)
	mux.HandleFunc("POST /api/posts/{id}/publish", postHandler.PublishPost)

	// Comment routes
	mux.HandleFunc("POST /api/comments/{id}/replies", commentHandler.ReplyToComment)

	// Agent admin routes (agents-admin permission checked in handler)
	mux.HandleFunc("GET /api/agents", agentHandler.ListAgents)
	mux.HandleFunc("POST /api/agents", agentHandler.CreateAgent)
	mux.HandleFunc("GET /api/agents/{id}", agentHandler.GetAgent)
	mux.HandleFunc("PATCH /api/agents/{id}", agentHandler.UpdateAgent)
	mux.HandleFunc("DELETE /api/agents/{id}", agentHandler.DeleteAgent)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
