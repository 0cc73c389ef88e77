package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// USERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'RESTAURANT',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// RESTAURANTS (display settings live on the row)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			city VARCHAR(255) NOT NULL,
			cuisine_type VARCHAR(100) NOT NULL,
			short_description TEXT,
			opens_at VARCHAR(10),
			closes_at VARCHAR(10),
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			currency VARCHAR(10) NOT NULL DEFAULT 'EUR',
			price_format VARCHAR(50) NOT NULL DEFAULT 'simple',
			language VARCHAR(10) NOT NULL DEFAULT 'en',
			logo_url VARCHAR(500),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// INGREDIENT TAXONOMY
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			code VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(500) NOT NULL,
			parent_code VARCHAR(255),
			source VARCHAR(50) NOT NULL DEFAULT 'feeb',
			last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ingredient_allergens (
			id SERIAL PRIMARY KEY,
			ingredient_id INT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			code VARCHAR(255) NOT NULL,
			name VARCHAR(500),
			canonical_code VARCHAR(255),
			canonical_name VARCHAR(500),
			family_code VARCHAR(100),
			family_name VARCHAR(255),
			marker_type VARCHAR(50),
			certainty VARCHAR(50) NOT NULL DEFAULT 'direct',
			source VARCHAR(50) NOT NULL DEFAULT 'feeb'
		)`,

		// -------------------------------
		// RECIPES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS recipes (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			instructions TEXT,
			menu_category TEXT,
			serving_size TEXT,
			price TEXT,
			image_url TEXT,
			special_notes TEXT,
			prominence_score DOUBLE PRECISION,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			is_on_menu BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id SERIAL PRIMARY KEY,
			recipe_id INT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id INT REFERENCES ingredients(id),
			name TEXT NOT NULL,
			quantity NUMERIC(10,3),
			unit TEXT,
			notes TEXT,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (recipe_id, name)
		)`,

		// -------------------------------
		// MENU SECTIONS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS menu_sections (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			position INT NOT NULL DEFAULT 0,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS menu_section_recipes (
			section_id INT NOT NULL REFERENCES menu_sections(id) ON DELETE CASCADE,
			recipe_id INT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			position INT,
			PRIMARY KEY (section_id, recipe_id)
		)`,

		// -------------------------------
		// MENU UPLOAD PIPELINE
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS menu_uploads (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			object_key VARCHAR(500) NOT NULL,
			filename VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'UPLOADED',
			error TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS menu_upload_stages (
			id SERIAL PRIMARY KEY,
			upload_id INT NOT NULL REFERENCES menu_uploads(id) ON DELETE CASCADE,
			name VARCHAR(50) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			detail TEXT,
			started_at TIMESTAMP,
			finished_at TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
