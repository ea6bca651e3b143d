package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/modish-shop/modish/internal/config"
	"github.com/modish-shop/modish/internal/constants"
	"github.com/modish-shop/modish/internal/models"
	"github.com/modish-shop/modish/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:   "test-secret-key-0123456789abcdef",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db), nil), db
}

func TestRegisterAndParseToken(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register("Ada@Example.com", "Sup3rSecret", "Ada")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDisplayNameFallsBackToEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.DisplayName != "ada" {
		t.Fatalf("expected display name from email local part, got %s", user.DisplayName)
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("not-an-email", "Sup3rSecret", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("ada@example.com", "short", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, _, _, err := svc.Register("ada@example.com", "alllowercase1", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	registered, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, token, _, err := svc.Login("ada@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login timestamp")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, _, err := svc.Login("ada@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Login("ghost@example.com", "Sup3rSecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}

	if _, _, _, err := svc.Login("ada@example.com", "Sup3rSecret"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestLoginRememberMeExtendsExpiry(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)
	svc.cfg.UserJWT.RememberMeExpireHours = 24 * 30

	if _, _, _, err := svc.Register("ada@example.com", "Sup3rSecret", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, normalExpiry, err := svc.LoginWithRememberMe("ada@example.com", "Sup3rSecret", false)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	_, _, rememberExpiry, err := svc.LoginWithRememberMe("ada@example.com", "Sup3rSecret", true)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !rememberExpiry.After(normalExpiry.Add(24 * time.Hour)) {
		t.Fatalf("expected remember-me expiry far beyond normal expiry: %v vs %v", rememberExpiry, normalExpiry)
	}
}
