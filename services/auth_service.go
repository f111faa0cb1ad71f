package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"kindSparkAPI/internal/pet"
	"kindSparkAPI/internal/user"
)

const accessTokenTTL = 7 * 24 * time.Hour

var ErrCredentialsTaken = errors.New("email or username already taken")
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db *pgxpool.Pool
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{db: db}
}

// Register creates the user and its companion pet in one transaction.
// Every pet starts as a level-1 egg with an empty streak.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, *pet.Pet, string, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		req.Email, req.Username,
	).Scan(&exists)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, nil, "", ErrCredentialsTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Username:     req.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = tx.Exec(ctx, `
	INSERT INTO users (id, email, password_hash, username, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Email, u.PasswordHash, u.Username, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	p := &pet.Pet{
		ID:             uuid.New(),
		UserID:         u.ID,
		Name:           "Spark",
		Mood:           pet.MoodNeutral,
		Level:          1,
		XP:             0,
		XPToNextLevel:  100,
		EvolutionStage: 1,
		StreakDays:     0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = tx.Exec(ctx, `
	INSERT INTO pets (id, user_id, name, mood, level, xp, xp_to_next_level, evolution_stage, streak_days, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.UserID, p.Name, p.Mood, p.Level, p.XP, p.XPToNextLevel, p.EvolutionStage, p.StreakDays, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create pet: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, "", fmt.Errorf("failed to commit registration: %w", err)
	}

	token, err := createAccessToken(u.ID)
	if err != nil {
		return nil, nil, "", err
	}

	return u, p, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, *pet.Pet, string, error) {
	u, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, "", ErrInvalidCredentials
		}
		return nil, nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	p, err := scanPet(s.db.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE user_id = $1`, u.ID))
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get pet: %w", err)
	}

	token, err := createAccessToken(u.ID)
	if err != nil {
		return nil, nil, "", err
	}

	return u, p, token, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	query := `
	SELECT id, email, password_hash, username, avatar_url, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Username,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
	SELECT id, email, password_hash, username, avatar_url, created_at, updated_at
	FROM users
	WHERE email = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Username,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func createAccessToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
