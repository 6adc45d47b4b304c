package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/meditactive/meditactive/internal/config"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/validation"
)

const authCookieName = "auth_token"

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a user with a hashed password and a zero coin balance.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, Invalid(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, Invalid(err.Error())
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, Invalid("first_name and last_name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, Internal("hash password", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	id, err := s.users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, Conflict("email already registered")
	}
	if err != nil {
		return nil, Internal("create user", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", id, "email", email)

	created, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, Internal("load created user", err)
	}
	return created, nil
}

// Login verifies credentials and returns the user. Wrong email and wrong
// password produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, Internal("load user", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, Unauthorized("invalid email or password")
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return user, nil
}

// GenerateJWT issues a signed token carrying the user id as subject.
func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		Issuer:    s.cfg.AppName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT validates the token signature and expiry and loads the subject
// user.
func (s *AuthService) VerifyJWT(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, Unauthorized("invalid token claims")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, Unauthorized("invalid token subject")
	}

	user, err := s.users.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, Unauthorized("account no longer exists")
	}
	if err != nil {
		return nil, Internal("load token user", err)
	}

	return user, nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.JWTExpiry.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName exposes the auth cookie name for middleware.
func (s *AuthService) CookieName() string {
	return authCookieName
}
