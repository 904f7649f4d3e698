package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type HistoryRepository interface {
	Recent(ctx context.Context, userID int64, limit int) ([]string, error)
	Append(ctx context.Context, userID int64, mealIDs []string, window int) error
}

type SQLiteHistoryRepository struct {
	database *sql.DB
}

func NewHistoryRepository(database *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{database: database}
}

// Recent returns up to limit meal ids, newest first.
func (repository *SQLiteHistoryRepository) Recent(ctx context.Context, userID int64, limit int) ([]string, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT meal_id FROM meal_history WHERE user_id = ? ORDER BY id DESC LIMIT ?", userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding meal history %d: %w", userID, err)
	}
	defer rows.Close()

	var mealIDs []string
	for rows.Next() {
		var mealID string
		if err := rows.Scan(&mealID); err != nil {
			return nil, fmt.Errorf("scanning meal history: %w", err)
		}
		mealIDs = append(mealIDs, mealID)
	}
	return mealIDs, rows.Err()
}

// Append records new picks and trims the trailing window so the history
// never exceeds window entries.
func (repository *SQLiteHistoryRepository) Append(ctx context.Context, userID int64, mealIDs []string, window int) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}

	now := time.Now()
	for _, mealID := range mealIDs {
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO meal_history (user_id, meal_id, created_at) VALUES (?, ?, ?)",
			userID, mealID, now,
		); err != nil {
			transaction.Rollback()
			return fmt.Errorf("appending meal history: %w", err)
		}
	}

	if _, err := transaction.ExecContext(ctx,
		`DELETE FROM meal_history WHERE user_id = ? AND id NOT IN (
			SELECT id FROM meal_history WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`, userID, userID, window,
	); err != nil {
		transaction.Rollback()
		return fmt.Errorf("trimming meal history: %w", err)
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing meal history: %w", err)
	}
	return nil
}
