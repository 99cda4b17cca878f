package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"placeholder/internal/models"
	"placeholder/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on any login failure. The caller is not
// told whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration, login and token verification.
type AuthService struct {
	accountRepo repositories.AccountRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService. The secret and token lifetime
// come from process configuration, resolved once at startup.
func NewAuthService(accountRepo repositories.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

// Register creates a new account and returns a freshly issued token.
// A duplicate email fails with repositories.ErrEmailTaken.
func (s *AuthService) Register(name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.accountRepo.Create(account); err != nil {
		return "", err
	}

	return s.issueToken(email)
}

// Login authenticates an account and returns a token if successful.
func (s *AuthService) Login(email, password string) (string, error) {
	account, err := s.accountRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(email)
}

// issueToken signs an HS256 token whose subject is the account email.
func (s *AuthService) issueToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning the claims if valid.
// Expired tokens and tokens signed with the wrong secret or algorithm are
// rejected.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
