package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scar796/nutrio/internal/models"
)

type CartRepository interface {
	Get(ctx context.Context, userID int64) (models.Cart, error)
	Save(ctx context.Context, cart models.Cart) error
	Clear(ctx context.Context, userID int64) error
}

type SQLiteCartRepository struct {
	database *sql.DB
}

func NewCartRepository(database *sql.DB) *SQLiteCartRepository {
	return &SQLiteCartRepository{database: database}
}

// Get returns the stored cart, empty when the user has none.
func (repository *SQLiteCartRepository) Get(ctx context.Context, userID int64) (models.Cart, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT ingredient, selected, manual FROM cart_items WHERE user_id = ?", userID,
	)
	if err != nil {
		return models.Cart{}, fmt.Errorf("finding cart %d: %w", userID, err)
	}
	defer rows.Close()

	cart := models.NewCart(userID)
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.Ingredient, &item.Selected, &item.Manual); err != nil {
			return models.Cart{}, fmt.Errorf("scanning cart item: %w", err)
		}
		cart.Items[item.Ingredient] = item
	}
	return cart, rows.Err()
}

// Save replaces the stored cart with the given state.
func (repository *SQLiteCartRepository) Save(ctx context.Context, cart models.Cart) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cart transaction: %w", err)
	}

	if _, err := transaction.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", cart.UserID,
	); err != nil {
		transaction.Rollback()
		return fmt.Errorf("clearing cart %d: %w", cart.UserID, err)
	}

	for _, item := range cart.Items {
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO cart_items (user_id, ingredient, selected, manual) VALUES (?, ?, ?, ?)",
			cart.UserID, item.Ingredient, item.Selected, item.Manual,
		); err != nil {
			transaction.Rollback()
			return fmt.Errorf("saving cart item %q: %w", item.Ingredient, err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing cart %d: %w", cart.UserID, err)
	}
	return nil
}

func (repository *SQLiteCartRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := repository.database.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID,
	); err != nil {
		return fmt.Errorf("clearing cart %d: %w", userID, err)
	}
	return nil
}
