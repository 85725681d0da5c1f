package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/luoteng/stuinfo-backend/internal/config"
	"github.com/luoteng/stuinfo-backend/internal/database"
	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpiry:            time.Hour,
		BcryptCost:           bcrypt.MinCost,
		DefaultAdminUsername: "admin",
		DefaultAdminPassword: "admin123",
	}
}

func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAuthService(t *testing.T, name string) (*AuthService, *repository.AdminRepository) {
	t.Helper()
	adminRepo := repository.NewAdminRepository(openTestDB(t, name))
	return NewAuthService(testConfig(), adminRepo), adminRepo
}

func seedAdmin(t *testing.T, s *AuthService, repo *repository.AdminRepository, username, password string) {
	t.Helper()
	hash, err := s.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := repo.Create(context.Background(), &model.Admin{Username: username, PasswordHash: hash}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func TestAuthService_PasswordHashing(t *testing.T) {
	s, _ := newAuthService(t, "auth_hash")

	hash, err := s.HashPassword("secret-pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret-pw" {
		t.Fatal("password stored in plaintext")
	}
	if err := s.CheckPassword(hash, "secret-pw"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if err := s.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	s, repo := newAuthService(t, "auth_login")
	seedAdmin(t, s, repo, "admin", "admin123")
	ctx := context.Background()

	token, err := s.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Username != "admin" {
		t.Fatalf("wrong username in claims: %q", claims.Username)
	}

	// Unknown username and wrong password fail identically.
	if _, err := s.Login(ctx, "ghost", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
	if _, err := s.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	adminRepo := repository.NewAdminRepository(openTestDB(t, "auth_expired"))
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	s := NewAuthService(cfg, adminRepo)

	token, err := s.GenerateToken("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestAuthService_RejectsTamperedToken(t *testing.T) {
	s, _ := newAuthService(t, "auth_tampered")

	token, err := s.GenerateToken("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token validated")
	}
	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
}

func TestAuthService_RejectsTokenFromOtherSecret(t *testing.T) {
	s1, _ := newAuthService(t, "auth_secret1")

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-different-secret"
	s2 := NewAuthService(otherCfg, nil)

	token, err := s2.GenerateToken("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s1.ValidateToken(token); err == nil {
		t.Fatal("token signed with other secret validated")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	s, repo := newAuthService(t, "auth_change")
	seedAdmin(t, s, repo, "admin", "admin123")
	ctx := context.Background()

	// Too short.
	err := s.ChangePassword(ctx, "admin", "admin123", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	// Length is counted in characters, not bytes: three CJK characters
	// are nine bytes but still too short.
	err = s.ChangePassword(ctx, "admin", "admin123", "密码密")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for 3-character password, got %v", err)
	}

	// Six CJK characters pass the length check.
	if err := s.ChangePassword(ctx, "admin", "admin123", "安全密码六位"); err != nil {
		t.Fatalf("6-character password rejected: %v", err)
	}
	if err := s.ChangePassword(ctx, "admin", "安全密码六位", "admin123"); err != nil {
		t.Fatalf("restore password: %v", err)
	}

	// Wrong current password.
	err = s.ChangePassword(ctx, "admin", "wrong", "new-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Success: old password stops working, new one authenticates.
	if err := s.ChangePassword(ctx, "admin", "admin123", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := s.Login(ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, err := s.Login(ctx, "admin", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_BootstrapSeedsOnce(t *testing.T) {
	s, repo := newAuthService(t, "auth_bootstrap")
	ctx := context.Background()

	if err := s.Bootstrap(ctx, zerolog.Nop()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := s.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("seeded credentials rejected: %v", err)
	}

	// Idempotent: a second bootstrap must not reset a changed password.
	if err := s.ChangePassword(ctx, "admin", "admin123", "changed-pw"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if err := s.Bootstrap(ctx, zerolog.Nop()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("admin count after rebootstrap: n=%d err=%v", n, err)
	}
	if _, err := s.Login(ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bootstrap reset the password: %v", err)
	}
	if _, err := s.Login(ctx, "admin", "changed-pw"); err != nil {
		t.Fatalf("changed password rejected after rebootstrap: %v", err)
	}
}
