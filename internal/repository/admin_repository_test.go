package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/luoteng/stuinfo-backend/internal/model"
)

func TestAdminRepository_CreateAndGet(t *testing.T) {
	repo := NewAdminRepository(openTestDB(t, "admin_create"))
	ctx := context.Background()

	a := &model.Admin{Username: "admin", PasswordHash: "hash-1"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 || a.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not set: %+v", a)
	}

	got, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != a.ID || got.PasswordHash != "hash-1" {
		t.Fatalf("mismatch: %+v", got)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAdminRepository_DuplicateUsername(t *testing.T) {
	repo := NewAdminRepository(openTestDB(t, "admin_dup"))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Admin{Username: "admin", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &model.Admin{Username: "admin", PasswordHash: "h2"})
	if !errors.Is(err, ErrAdminUsernameTaken) {
		t.Fatalf("expected ErrAdminUsernameTaken, got %v", err)
	}
}

func TestAdminRepository_UpdatePassword(t *testing.T) {
	repo := NewAdminRepository(openTestDB(t, "admin_update"))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Admin{Username: "admin", PasswordHash: "old"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpdatePassword(ctx, "admin", "new"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Fatalf("password not updated: %+v", got)
	}

	if err := repo.UpdatePassword(ctx, "nobody", "x"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAdminRepository_Count(t *testing.T) {
	repo := NewAdminRepository(openTestDB(t, "admin_count"))
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("count on empty table: n=%d err=%v", n, err)
	}
	if err := repo.Create(ctx, &model.Admin{Username: "admin", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	n, err = repo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count after create: n=%d err=%v", n, err)
	}
}
