package main

import (
	"context"
	"flag"
	"log"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	log.Printf("Setting up schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Printf("Dropping tables with prefix %s", cfg.TablePrefix)
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Printf("Schema ready")
	os.Exit(0)
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Documents table. The service generates document IDs, so no DB
	// default is needed. "refs" backs the References field because
	// "references" is reserved in SQL.
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			author_id UUID NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL UNIQUE,
			content JSONB,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'building',
			cover_image_id TEXT,
			curation JSONB,
			refs TEXT[],
			submission_history BIGINT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			published_at TIMESTAMPTZ,
			submitted_at TIMESTAMPTZ,
			rejection_reason TEXT
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	// Slug redirects. The serial id doubles as the insertion-order
	// tie-break for oldest-first eviction.
	createRedirects := `
		CREATE TABLE IF NOT EXISTS ` + tables.SlugRedirects + ` (
			id BIGSERIAL PRIMARY KEY,
			old_slug TEXT NOT NULL UNIQUE,
			document_id UUID NOT NULL REFERENCES ` + tables.Documents + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createRedirects); err != nil {
		return err
	}

	// Singleton stats aggregate, always row id = 1.
	createStats := `
		CREATE TABLE IF NOT EXISTS ` + tables.DocumentStats + ` (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			building_count INTEGER NOT NULL DEFAULT 0,
			pending_count INTEGER NOT NULL DEFAULT 0,
			published_count INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createStats); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_author ON ` + tables.Documents + `(author_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_status ON ` + tables.Documents + `(status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_pending_queue ON ` + tables.Documents + `(submitted_at) WHERE status = 'pending'`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `slug_redirects_document ON ` + tables.SlugRedirects + `(document_id, created_at, id)`,
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
		tables.SlugRedirects,
		tables.DocumentStats,
		tables.Documents,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
