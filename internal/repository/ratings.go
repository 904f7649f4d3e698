package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scar796/nutrio/internal/models"
)

type RatingRepository interface {
	Create(ctx context.Context, rating models.MealRating) (models.MealRating, error)
	CountForMeal(ctx context.Context, mealID string) (likes int, dislikes int, err error)
}

type SQLiteRatingRepository struct {
	database *sql.DB
}

func NewRatingRepository(database *sql.DB) *SQLiteRatingRepository {
	return &SQLiteRatingRepository{database: database}
}

func (repository *SQLiteRatingRepository) Create(ctx context.Context, rating models.MealRating) (models.MealRating, error) {
	rating.ID = uuid.NewString()
	rating.CreatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO meal_ratings (id, user_id, meal_id, liked, created_at) VALUES (?, ?, ?, ?, ?)",
		rating.ID, rating.UserID, rating.MealID, rating.Liked, rating.CreatedAt,
	)
	if err != nil {
		return models.MealRating{}, fmt.Errorf("creating rating: %w", err)
	}
	return rating, nil
}

func (repository *SQLiteRatingRepository) CountForMeal(ctx context.Context, mealID string) (int, int, error) {
	var likes, dislikes int
	err := repository.database.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN liked THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN liked THEN 0 ELSE 1 END), 0)
		FROM meal_ratings WHERE meal_id = ?`, mealID,
	).Scan(&likes, &dislikes)
	if err != nil {
		return 0, 0, fmt.Errorf("counting ratings for %q: %w", mealID, err)
	}
	return likes, dislikes, nil
}
