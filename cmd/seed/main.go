package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed agents")
	clearData := flag.Bool("clear-data", false, "Clear all posts, comments and agents (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("🧹 Clearing existing posts, comments and agents...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories and the agent service
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	agentRepo := postgres.NewAgentRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)
	agentService := service.NewAgentService(agentRepo, commentRepo, txManager, logger)

	// Seed example custom agents
	log.Println("🤖 Seeding example reader agents...")

	agents := getSeedAgents()
	for i, req := range agents {
		agent, err := agentService.CreateAgent(ctx, req)
		if err != nil {
			log.Printf("❌ Failed to create agent '%s': %v", req.Name, err)
			continue
		}
		log.Printf("✅ Created agent %d/%d: %s (ID: %s)", i+1, len(agents), agent.Name, agent.ID)
	}

	log.Println("🎉 Seeding complete!")
}

// getSeedAgents returns example custom personas for local development.
// The built-in personas ship embedded in the binary and are not seeded.
func getSeedAgents() []*services.CreateAgentRequest {
	return []*services.CreateAgentRequest{
		{
			Name:      "Marta Kowalczyk",
			AvatarURL: "https://api.dicebear.com/9.x/notionists/svg?seed=marta",
			Backstory: "Retired librarian who reads everything twice and keeps a commonplace book of quotations.",
			WritingStyle: &models.WritingStyle{
				RoleplayInstruction: "You are Marta, a retired librarian. You comment like someone writing marginalia: precise, warm, and occasionally pedantic about sources.",
				Voice:               "Measured and bookish, fond of semicolons.",
				Keywords:            []string{"provenance", "marginalia", "cross-reference"},
				SentenceStructure:   "Long, carefully balanced sentences with the occasional short verdict.",
				FocusTopics:         "Connections to other books and essays the post reminds you of.",
				NegativeConstraints: "Never use exclamation marks. Never summarize the post back at the author.",
				ExampleResponse:     "This reminded me of an essay I shelved for years and never quite forgot; the argument rhymes, even if the conclusions differ.",
			},
		},
		{
			Name:      "Dev Patel",
			AvatarURL: "https://api.dicebear.com/9.x/notionists/svg?seed=dev",
			Backstory: "Startup founder between companies, reads blogs while pretending to write his own.",
			WritingStyle: &models.WritingStyle{
				RoleplayInstruction: "You are Dev, a founder on sabbatical. You comment in quick, enthusiastic bursts and always relate things back to building products.",
				Voice:               "Energetic, informal, lowercase-friendly.",
				Keywords:            []string{"shipping", "iteration", "leverage"},
				SentenceStructure:   "Short punchy fragments. Sometimes just one line.",
				FocusTopics:         "What the post implies about building and shipping things.",
				NegativeConstraints: "Never write more than three sentences. Never use corporate jargon like 'synergy'.",
				ExampleResponse:     "okay this is exactly the framing i needed this week. stealing it.",
			},
		},
	}
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create posts table
	createPosts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Posts + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			author_id UUID NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			body TEXT NOT NULL,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(author_id, slug)
		)
	`
	if _, err := pool.Exec(ctx, createPosts); err != nil {
		return err
	}

	// Create agents table
	createAgents := `
		CREATE TABLE IF NOT EXISTS ` + tables.Agents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			backstory TEXT NOT NULL DEFAULT '',
			writing_style JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createAgents); err != nil {
		return err
	}

	// Create comments table. author_type/author_id form a tagged pair:
	// both NULL means the author was deleted. No FK on author_id since
	// it can reference a Supabase user, an agents row, or a built-in
	// persona slug depending on author_type.
	createComments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			post_id UUID NOT NULL REFERENCES ` + tables.Posts + `(id) ON DELETE CASCADE,
			parent_comment_id UUID REFERENCES ` + tables.Comments + `(id) ON DELETE CASCADE,
			author_type TEXT,
			author_id TEXT,
			content TEXT NOT NULL,
			upvotes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK ((author_type IS NULL) = (author_id IS NULL))
		)
	`
	if _, err := pool.Exec(ctx, createComments); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `posts_author_id ON ` + tables.Posts + `(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_post_id ON ` + tables.Comments + `(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_parent ON ` + tables.Comments + `(parent_comment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_author ON ` + tables.Comments + `(author_type, author_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Comments,
		tables.Posts,
		tables.Agents,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearAllData removes all rows but keeps the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Comments, tables.Posts, tables.Agents} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
