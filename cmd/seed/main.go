// seed is a one-shot tool that loads the starter data a fresh install needs:
// one admin account per branch and the grooming service catalog.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"petstore-backend/internal/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is not set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring branch admins...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash, role, location)
		VALUES
		    ('admin_matina', 'matina@chonkyboi.example', 'Matina', 'Admin', $1, 'admin', 'Matina'),
		    ('admin_toril',  'toril@chonkyboi.example',  'Toril',  'Admin', $1, 'admin', 'Toril')
		ON CONFLICT (username) DO UPDATE
		  SET password_hash = EXCLUDED.password_hash,
		      is_active = true;
	`, string(hash))
	if err != nil {
		log.Fatalf("Failed to restore admins: %v", err)
	}

	log.Println("Restoring service catalog...")
	_, err = tx.Exec(ctx, `
		INSERT INTO services (service_name, description, inclusions, duration_minutes, may_overlap,
		                      is_solo, can_be_addon, can_be_standalone, has_sizes, base_price,
		                      small_price, medium_price, large_price, extra_large_price,
		                      addon_price, standalone_price)
		SELECT s.*
		FROM (VALUES
		    ('Full Grooming', 'Complete grooming package',
		     '["Bath", "Blow dry", "Haircut", "Nail trim", "Ear cleaning"]'::jsonb,
		     90, false, false, false, true, true, 500.00,
		     500.00::numeric, 650.00::numeric, 800.00::numeric, 950.00::numeric,
		     NULL::numeric, NULL::numeric),
		    ('Bath & Blow Dry', 'Shampoo bath with full blow dry',
		     '["Bath", "Blow dry", "Cologne"]'::jsonb,
		     60, false, false, false, true, true, 300.00,
		     300.00, 400.00, 500.00, 600.00, NULL, NULL),
		    ('Nail Trimming', 'Nail trim and filing',
		     '["Nail trim", "Filing"]'::jsonb,
		     30, true, true, true, true, false, 150.00,
		     NULL, NULL, NULL, NULL, 100.00, 150.00),
		    ('Ear Cleaning', 'Gentle ear flush and wipe down',
		     '["Ear flush", "Wipe down"]'::jsonb,
		     30, true, true, true, true, false, 150.00,
		     NULL, NULL, NULL, NULL, 100.00, 150.00),
		    ('Teeth Brushing', 'Brushing with pet-safe toothpaste',
		     '["Brushing", "Breath spray"]'::jsonb,
		     30, true, true, true, true, false, 180.00,
		     NULL, NULL, NULL, NULL, 120.00, 180.00)
		) AS s(service_name, description, inclusions, duration_minutes, may_overlap,
		       is_solo, can_be_addon, can_be_standalone, has_sizes, base_price,
		       small_price, medium_price, large_price, extra_large_price,
		       addon_price, standalone_price)
		WHERE NOT EXISTS (
			SELECT 1 FROM services existing WHERE existing.service_name = s.service_name
		);
	`)
	if err != nil {
		log.Fatalf("Failed to restore services: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Seed data restored.")
}
