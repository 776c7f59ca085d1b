// seed bootstraps the user_types table and the first admin user. The create-user
// route requires an authenticated session, so the first user must come from here.
// Idempotent: skips inserts for rows that already exist.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"time"

	"user-session-backend/internal/config"
	"user-session-backend/internal/db"
	"user-session-backend/internal/security"
	userdomain "user-session-backend/internal/user/domain"
)

var defaultUserTypes = []string{"admin", "standard"}

func main() {
	email := flag.String("email", "", "Email for the first admin user")
	password := flag.String("password", "", "Password for the first admin user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	if *email == "" || *password == "" {
		log.Fatal("seed: -email and -password are required")
	}
	emailNorm := userdomain.NormalizeEmail(*email)
	if err := security.DefaultPasswordPolicy.Validate(*password); err != nil {
		log.Fatalf("seed: %v", err)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	adminTypeID, err := seedUserTypes(ctx, conn)
	if err != nil {
		log.Fatalf("seed user types: %v", err)
	}

	created, err := seedAdminUser(ctx, conn, cfg, adminTypeID, emailNorm, *password)
	if err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	if created {
		log.Printf("seed: created admin user %s", emailNorm)
	} else {
		log.Printf("seed: admin user %s already exists, nothing to do", emailNorm)
	}
}

// seedUserTypes inserts the default user types if missing and returns the admin type id.
func seedUserTypes(ctx context.Context, conn *sql.DB) (int64, error) {
	for _, name := range defaultUserTypes {
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO user_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return 0, err
		}
	}
	var adminTypeID int64
	err := conn.QueryRowContext(ctx, `SELECT id FROM user_types WHERE name = 'admin'`).Scan(&adminTypeID)
	return adminTypeID, err
}

func seedAdminUser(ctx context.Context, conn *sql.DB, cfg *config.Config, adminTypeID int64, email, password string) (bool, error) {
	var existing int64
	err := conn.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(password))
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	_, err = conn.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, user_type_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		email, hash, adminTypeID, now, now)
	return err == nil, err
}
