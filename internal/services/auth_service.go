// Package services – AuthService
//
// This file implements account registration, password login, and JWT
// issuance/verification. Passwords are stored as bcrypt hashes; tokens are
// HS256 with user id and admin flag claims.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
)

// AuthService owns accounts and tokens.
type AuthService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), TTL: ttl}
}

// Register creates a new account. Duplicate emails map to ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) < 6 {
		return nil, errors.New("name, email, and a password of at least 6 characters are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := repo.CreateUser(ctx, s.DB, name, email, string(hash))
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "unique") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed token plus the user.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := repo.GetUserByEmail(ctx, s.DB, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := s.issue(u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Claims carried by issued tokens.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func (s *AuthService) issue(u *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Admin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses and validates a token, returning the user id and admin flag.
func (s *AuthService) Verify(tokenString string) (userID string, admin bool, err error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", false, ErrInvalidToken
	}
	return claims.Subject, claims.Admin, nil
}

// EnsureAdmin seeds (or promotes) the configured admin account at startup.
// A blank email disables seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	switch {
	case err == nil:
		if u.IsAdmin {
			return nil
		}
		return repo.SetAdmin(ctx, s.DB, u.ID, true)
	case errors.Is(err, repo.ErrNotFound):
		created, rerr := s.Register(ctx, "Administrador", email, password)
		if rerr != nil {
			return rerr
		}
		return repo.SetAdmin(ctx, s.DB, created.ID, true)
	default:
		return err
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
