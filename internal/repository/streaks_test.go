package repository_test

import (
	"context"
	"testing"

	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/testutil"
)

func TestStreakRepository_GetDefault(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewStreakRepository(db)
	ctx := context.Background()

	record, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting default streak: %v", err)
	}
	if record.UserID != 42 {
		t.Errorf("expected user id 42, got %d", record.UserID)
	}
	if record.Count != 0 || record.Points != 0 || record.LastEngaged != "" {
		t.Errorf("expected zero streak for new user, got %+v", record)
	}
}

func TestStreakRepository_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewStreakRepository(db)
	ctx := context.Background()

	record := models.StreakRecord{UserID: 42, Count: 3, Points: 17, LastEngaged: "2026-08-30"}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("upserting streak: %v", err)
	}

	loaded, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting streak: %v", err)
	}
	if loaded != record {
		t.Errorf("expected %+v, got %+v", record, loaded)
	}
}

func TestStreakRepository_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewStreakRepository(db)
	ctx := context.Background()

	repo.Upsert(ctx, models.StreakRecord{UserID: 42, Count: 1, Points: 3, LastEngaged: "2026-08-29"})
	repo.Upsert(ctx, models.StreakRecord{UserID: 42, Count: 2, Points: 9, LastEngaged: "2026-08-30"})

	loaded, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting streak: %v", err)
	}
	if loaded.Count != 2 || loaded.Points != 9 || loaded.LastEngaged != "2026-08-30" {
		t.Errorf("expected overwritten streak, got %+v", loaded)
	}
}
