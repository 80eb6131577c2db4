package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/repository"
)

// AuthService registers and authenticates users and issues access tokens
type AuthService struct {
	db     *repository.DB
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates the auth service
func NewAuthService(db *repository.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTExpiresIn,
	}
}

// Register creates a user account and returns a signed token
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, models.Invalid("invalid role")
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, req.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if exists {
		return nil, models.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{Email: req.Email, Name: req.Name, Role: role}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, req.Email, string(hash), req.Name, role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (%s)", user.Email, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password, name, role, created_at
		FROM users
		WHERE email = $1
	`, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &models.AuthResponse{Token: token, User: user}, nil
}

// GenerateToken signs an HS256 access token carrying the user's identity
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and extracts the caller's identity
func (s *AuthService) ParseToken(tokenString string) (*models.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &models.AuthClaims{
		UserID: int64(id),
		Email:  email,
		Role:   role,
	}, nil
}
