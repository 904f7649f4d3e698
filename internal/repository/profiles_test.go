package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/testutil"
)

func sampleProfile(userID int64) models.UserProfile {
	return models.UserProfile{
		UserID:  userID,
		Name:    "Asha Kulkarni",
		Age:     34,
		Region:  models.RegionMaharashtra,
		Diet:    models.DietVegetarian,
		Medical: []models.MedicalTag{models.MedicalDiabetes},
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 42)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepository_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleProfile(42)); err != nil {
		t.Fatalf("upserting profile: %v", err)
	}

	profile, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if profile.Name != "Asha Kulkarni" {
		t.Errorf("expected name 'Asha Kulkarni', got '%s'", profile.Name)
	}
	if profile.Region != models.RegionMaharashtra {
		t.Errorf("expected region maharashtra, got %s", profile.Region)
	}
	if len(profile.Medical) != 1 || profile.Medical[0] != models.MedicalDiabetes {
		t.Errorf("expected medical tags [diabetes], got %v", profile.Medical)
	}
}

func TestProfileRepository_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleProfile(42)); err != nil {
		t.Fatalf("upserting profile: %v", err)
	}

	updated := sampleProfile(42)
	updated.Diet = models.DietVegan
	updated.Medical = nil
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("upserting updated profile: %v", err)
	}

	profile, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if profile.Diet != models.DietVegan {
		t.Errorf("expected diet vegan after update, got %s", profile.Diet)
	}
	if len(profile.Medical) != 0 {
		t.Errorf("expected no medical tags after update, got %v", profile.Medical)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("counting profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 profile after overwrite, got %d", count)
	}
}

func TestProfileRepository_Count(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	for userID := int64(1); userID <= 3; userID++ {
		if err := repo.Upsert(ctx, sampleProfile(userID)); err != nil {
			t.Fatalf("upserting profile %d: %v", userID, err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("counting profiles: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 profiles, got %d", count)
	}
}
