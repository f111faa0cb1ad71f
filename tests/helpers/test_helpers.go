package helpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// SetupTestDB creates a test database connection and ensures the schema
// exists. Tests are skipped when no database is configured.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL must be set")
	}

	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	ensureSchema(t, pool)

	return pool
}

func ensureSchema(t *testing.T, pool *pgxpool.Pool) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "schema.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema.sql: %v", err)
	}

	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
}

// CleanupTestDB removes test users (cascades to pets, participations and
// awards) and closes the pool.
func CleanupTestDB(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	_, err := pool.Exec(ctx, "DELETE FROM users WHERE email LIKE 'test%@example.com'")
	if err != nil {
		t.Logf("Warning: failed to cleanup test data: %v", err)
	}
	pool.Close()
}

// GenerateAccessToken mints a token the auth middleware accepts.
func GenerateAccessToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// InsertTestEvent creates an event row and returns its id.
func InsertTestEvent(t *testing.T, pool *pgxpool.Pool, category string, xpReward int) uuid.UUID {
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
	INSERT INTO events (id, title, description, category, latitude, longitude, address, start_time, xp_reward)
	VALUES ($1, 'Test park cleanup', 'Integration test event', $2, 43.25, 76.94, 'Test park', NOW(), $3)
	`, id, category, xpReward)
	if err != nil {
		t.Fatalf("Failed to insert test event: %v", err)
	}
	return id
}

// InsertTestAchievement creates a catalog row and returns its id.
func InsertTestAchievement(t *testing.T, pool *pgxpool.Pool, key, conditionType string, conditionValue, xpBonus int) uuid.UUID {
	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
	INSERT INTO achievements (id, key, title, description, icon, xp_bonus, condition_type, condition_value)
	VALUES ($1, $2, $2, 'Integration test achievement', '🏆', $3, $4, $5)
	ON CONFLICT (key) DO UPDATE SET xp_bonus = $3, condition_type = $4, condition_value = $5
	`, id, key, xpBonus, conditionType, conditionValue)
	if err != nil {
		t.Fatalf("Failed to insert test achievement: %v", err)
	}

	err = pool.QueryRow(context.Background(), `SELECT id FROM achievements WHERE key = $1`, key).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to fetch test achievement id: %v", err)
	}
	return id
}

// CleanupTestCatalog removes catalog rows created by tests.
func CleanupTestCatalog(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM achievements WHERE description = 'Integration test achievement'"); err != nil {
		t.Logf("Warning: failed to cleanup achievements: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM events WHERE description = 'Integration test event'"); err != nil {
		t.Logf("Warning: failed to cleanup events: %v", err)
	}
}
