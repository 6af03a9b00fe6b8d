package token_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ideaboard/api/internal/adapter/postgres/testhelper"
	"github.com/ideaboard/api/internal/adapter/postgres/token"
	"github.com/ideaboard/api/internal/domain"
)

func newRepo(t *testing.T) (*token.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return token.New(pool), pool
}

func TestRepo_Create_AndGetByHash(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	hash := "hash-" + uuid.New().String()
	expiresAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Microsecond)

	created, err := repo.Create(ctx, user.ID, hash, expiresAt)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil token ID")
	}
	if created.RevokedAt != nil {
		t.Error("new token should not be revoked")
	}

	got, err := repo.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, created.ID)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID mismatch: got %s, want %s", got.UserID, user.ID)
	}
}

func TestRepo_GetByHash_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByHash(context.Background(), "missing-"+uuid.New().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_RevokeByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	hash := "hash-" + uuid.New().String()
	created, err := repo.Create(ctx, user.ID, hash, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.RevokeByID(ctx, created.ID); err != nil {
		t.Fatalf("RevokeByID: unexpected error: %v", err)
	}

	got, err := repo.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if !got.IsRevoked() {
		t.Error("expected token revoked")
	}

	// Revoking again is a no-op.
	if err := repo.RevokeByID(ctx, created.ID); err != nil {
		t.Fatalf("RevokeByID again: unexpected error: %v", err)
	}
}

func TestRepo_RevokeAllByUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	hash1 := "hash-" + uuid.New().String()
	hash2 := "hash-" + uuid.New().String()
	if _, err := repo.Create(ctx, user.ID, hash1, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create 1: %v", err)
	}
	if _, err := repo.Create(ctx, user.ID, hash2, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create 2: %v", err)
	}

	if err := repo.RevokeAllByUser(ctx, user.ID); err != nil {
		t.Fatalf("RevokeAllByUser: unexpected error: %v", err)
	}

	for _, h := range []string{hash1, hash2} {
		got, err := repo.GetByHash(ctx, h)
		if err != nil {
			t.Fatalf("GetByHash %s: %v", h, err)
		}
		if !got.IsRevoked() {
			t.Errorf("expected token %s revoked", h)
		}
	}
}

func TestRepo_DeleteExpired(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	expiredHash := "hash-" + uuid.New().String()
	liveHash := "hash-" + uuid.New().String()
	if _, err := repo.Create(ctx, user.ID, expiredHash, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	if _, err := repo.Create(ctx, user.ID, liveHash, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create live: %v", err)
	}

	if _, err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: unexpected error: %v", err)
	}

	if _, err := repo.GetByHash(ctx, expiredHash); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected expired token gone, got: %v", err)
	}
	if _, err := repo.GetByHash(ctx, liveHash); err != nil {
		t.Errorf("live token should remain: %v", err)
	}
}
