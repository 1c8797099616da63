package auth

import (
	"fmt"
	"time"

	"auction-bidder/internal/auctionerrors"
	"auction-bidder/internal/models"
	"auction-bidder/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service handles user registration and token issuance for the dev backend.
type Service struct {
	repo   repository.AuctionDB
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service signing tokens with secret, valid for ttl.
func NewService(repo repository.AuctionDB, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Register creates a new user with a hashed password.
func (s *Service) Register(name, email, password string) (models.User, error) {
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("auth: name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(name, email, string(hash))
	if err != nil {
		return models.User{}, fmt.Errorf("auth: failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns a signed bearer token plus the user
// record.
func (s *Service) Login(email, password string) (string, models.User, error) {
	user, hash, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return "", models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", models.User{}, fmt.Errorf("auth: %w", auctionerrors.ErrBadCredentials)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"exp":  time.Now().Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, user, nil
}

// ParseToken validates a bearer token and extracts the user ID.
func (s *Service) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("auth: invalid token: %w", auctionerrors.ErrAuthExpired)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("auth: invalid claims: %w", auctionerrors.ErrAuthExpired)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("auth: missing subject: %w", auctionerrors.ErrAuthExpired)
	}
	return sub, nil
}
