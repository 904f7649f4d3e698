package repository_test

import (
	"context"
	"testing"

	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/testutil"
)

func TestRatingRepository_CreateAssignsID(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewRatingRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.MealRating{UserID: 42, MealID: "maharashtra/poha", Liked: true})
	if err != nil {
		t.Fatalf("creating rating: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated rating id")
	}
}

func TestRatingRepository_CountForMeal(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewRatingRepository(db)
	ctx := context.Background()

	ratings := []models.MealRating{
		{UserID: 1, MealID: "maharashtra/poha", Liked: true},
		{UserID: 2, MealID: "maharashtra/poha", Liked: true},
		{UserID: 3, MealID: "maharashtra/poha", Liked: false},
		{UserID: 4, MealID: "karnataka/ragi-mudde", Liked: true},
	}
	for _, rating := range ratings {
		if _, err := repo.Create(ctx, rating); err != nil {
			t.Fatalf("creating rating: %v", err)
		}
	}

	likes, dislikes, err := repo.CountForMeal(ctx, "maharashtra/poha")
	if err != nil {
		t.Fatalf("counting ratings: %v", err)
	}
	if likes != 2 || dislikes != 1 {
		t.Errorf("expected 2 likes and 1 dislike, got %d and %d", likes, dislikes)
	}
}

func TestRatingRepository_CountForUnratedMeal(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewRatingRepository(db)
	ctx := context.Background()

	likes, dislikes, err := repo.CountForMeal(ctx, "karnataka/neer-dosa")
	if err != nil {
		t.Fatalf("counting ratings: %v", err)
	}
	if likes != 0 || dislikes != 0 {
		t.Errorf("expected zero counts, got %d and %d", likes, dislikes)
	}
}
