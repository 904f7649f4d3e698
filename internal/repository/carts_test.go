package repository_test

import (
	"context"
	"testing"

	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/testutil"
)

func TestCartRepository_GetEmpty(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting empty cart: %v", err)
	}
	if cart.UserID != 42 {
		t.Errorf("expected user id 42, got %d", cart.UserID)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %v", cart.Items)
	}
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()

	cart := models.NewCart(42)
	cart.Items["rice"] = models.CartItem{Ingredient: "rice", Selected: true}
	cart.Items["jaggery"] = models.CartItem{Ingredient: "jaggery", Selected: false, Manual: true}

	if err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("saving cart: %v", err)
	}

	loaded, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting cart: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if !loaded.Items["rice"].Selected {
		t.Error("expected rice to stay selected")
	}
	if !loaded.Items["jaggery"].Manual {
		t.Error("expected jaggery to stay manual")
	}
}

func TestCartRepository_SaveReplaces(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()

	first := models.NewCart(42)
	first.Items["rice"] = models.CartItem{Ingredient: "rice", Selected: true}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("saving first cart: %v", err)
	}

	second := models.NewCart(42)
	second.Items["toor dal"] = models.CartItem{Ingredient: "toor dal", Selected: true}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("saving second cart: %v", err)
	}

	loaded, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting cart: %v", err)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("expected replacement save, got %v", loaded.Items)
	}
	if _, ok := loaded.Items["toor dal"]; !ok {
		t.Error("expected toor dal in replaced cart")
	}
}

func TestCartRepository_Clear(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()

	cart := models.NewCart(42)
	cart.Items["rice"] = models.CartItem{Ingredient: "rice", Selected: true}
	if err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("saving cart: %v", err)
	}

	if err := repo.Clear(ctx, 42); err != nil {
		t.Fatalf("clearing cart: %v", err)
	}

	loaded, err := repo.Get(ctx, 42)
	if err != nil {
		t.Fatalf("getting cart: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Errorf("expected empty cart after clear, got %v", loaded.Items)
	}
}
