package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/scar796/nutrio/internal/models"
)

type StreakRepository interface {
	Get(ctx context.Context, userID int64) (models.StreakRecord, error)
	Upsert(ctx context.Context, record models.StreakRecord) error
}

type SQLiteStreakRepository struct {
	database *sql.DB
}

func NewStreakRepository(database *sql.DB) *SQLiteStreakRepository {
	return &SQLiteStreakRepository{database: database}
}

// Get returns the stored streak, or a fresh zero-value record for users
// who have never engaged.
func (repository *SQLiteStreakRepository) Get(ctx context.Context, userID int64) (models.StreakRecord, error) {
	var record models.StreakRecord
	err := repository.database.QueryRowContext(ctx,
		"SELECT user_id, streak_count, points, last_engaged FROM streaks WHERE user_id = ?", userID,
	).Scan(&record.UserID, &record.Count, &record.Points, &record.LastEngaged)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StreakRecord{UserID: userID}, nil
	}
	if err != nil {
		return models.StreakRecord{}, fmt.Errorf("finding streak %d: %w", userID, err)
	}
	return record, nil
}

func (repository *SQLiteStreakRepository) Upsert(ctx context.Context, record models.StreakRecord) error {
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO streaks (user_id, streak_count, points, last_engaged)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			streak_count = excluded.streak_count,
			points = excluded.points,
			last_engaged = excluded.last_engaged`,
		record.UserID, record.Count, record.Points, record.LastEngaged,
	)
	if err != nil {
		return fmt.Errorf("upserting streak %d: %w", record.UserID, err)
	}
	return nil
}
