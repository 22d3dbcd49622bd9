// Package main provides a CLI tool for seeding the database with a demo
// account and sample catalog data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"gstbill/internal/core/id"
	"gstbill/internal/infrastructure/storage/postgres"
	"gstbill/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	demoUserID, err := seedDemoUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed demo user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, demoUserID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedDemoUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	email := os.Getenv("DEMO_EMAIL")
	if email == "" {
		email = "demo@gstbill.in"
	}

	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "Demo1234!"
	}

	// Check if demo user already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
		email,
	).Scan(&existingID)
	if err == nil {
		log.Infow("demo user already exists", "email", email, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check demo user exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, name,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'Demo User', true, false, NOW(), NOW(), 1)
	`, userID, email, string(passwordHash))
	if err != nil {
		return id.Nil(), fmt.Errorf("insert demo user: %w", err)
	}

	log.Infow("demo user created",
		"email", email,
		"user_id", userID,
	)

	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, userID id.ID) error {
	log.Info("seeding demo data...")

	// 1. Seed Company
	companyID := id.New()
	companyCode := "CMP-DEMO"
	commandTag, err := pool.Pool.Exec(ctx, `
		INSERT INTO cat_companies (
			id, code, name, user_id, gstin, pan, address, mobile, email,
			version, deletion_mark, attributes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, false, '{}')
		ON CONFLICT (user_id, code) WHERE deletion_mark = FALSE DO NOTHING
	`, companyID, companyCode, "Sharma Trading Co", userID,
		"27AAPFU0939F1ZV", "AAPFU0939F",
		`{"street":"12 MG Road","city":"Pune","state":"Maharashtra","pincode":"411001","country":"India"}`,
		"+91 98765 43210", "billing@sharmatrading.in")
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Infow("demo company already exists", "code", companyCode)
	} else {
		log.Infow("demo company created", "code", companyCode, "company_id", companyID)
	}

	// 2. Seed Products
	products := []struct {
		code    string
		name    string
		hsn     string
		price   string
		taxRate string
		unit    string
	}{
		{"PRD-001", "Cotton Fabric (per metre)", "5208", "450", "5", "mtr"},
		{"PRD-002", "Steel Rod 12mm", "7214", "62.50", "18", "kg"},
		{"PRD-003", "LED Bulb 9W", "8539", "120", "12", "pcs"},
		{"PRD-004", "Consulting Services", "9983", "2500", "18", "hrs"},
		{"PRD-005", "Packing & Forwarding", "9965", "350", "18", "pcs"},
	}

	for _, p := range products {
		prodID := id.New()
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (
				id, code, name, user_id, hsn_code, price, tax_rate, unit,
				version, deletion_mark, attributes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, false, '{}')
			ON CONFLICT (user_id, code) WHERE deletion_mark = FALSE DO NOTHING
		`, prodID, p.code, p.name, userID, p.hsn, p.price, p.taxRate, p.unit)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded")
	return nil
}
