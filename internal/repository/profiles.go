package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scar796/nutrio/internal/models"
)

// ErrNotFound reports a missing row for keyed lookups.
var ErrNotFound = errors.New("not found")

// ErrUnavailable wraps storage failures the caller should treat as
// best-effort: continue on in-memory state, log, never abort the
// user-facing operation.
var ErrUnavailable = errors.New("storage unavailable")

type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (models.UserProfile, error)
	Upsert(ctx context.Context, profile models.UserProfile) error
	Count(ctx context.Context) (int, error)
}

type SQLiteProfileRepository struct {
	database *sql.DB
}

func NewProfileRepository(database *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{database: database}
}

func (repository *SQLiteProfileRepository) Get(ctx context.Context, userID int64) (models.UserProfile, error) {
	var profile models.UserProfile
	var medical string
	err := repository.database.QueryRowContext(ctx,
		`SELECT user_id, name, age, region, diet, medical, gender, activity, created_at, updated_at
		FROM profiles WHERE user_id = ?`, userID,
	).Scan(
		&profile.UserID, &profile.Name, &profile.Age, &profile.Region, &profile.Diet,
		&medical, &profile.Gender, &profile.Activity, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, fmt.Errorf("finding profile %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("finding profile %d: %w", userID, err)
	}
	profile.Medical = decodeMedical(medical)
	return profile, nil
}

func (repository *SQLiteProfileRepository) Upsert(ctx context.Context, profile models.UserProfile) error {
	now := time.Now()
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, age, region, diet, medical, gender, activity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			region = excluded.region,
			diet = excluded.diet,
			medical = excluded.medical,
			gender = excluded.gender,
			activity = excluded.activity,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.Name, profile.Age, profile.Region, profile.Diet,
		encodeMedical(profile.Medical), profile.Gender, profile.Activity, profile.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("upserting profile %d: %w", profile.UserID, err)
	}
	return nil
}

func (repository *SQLiteProfileRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return count, nil
}

func encodeMedical(tags []models.MedicalTag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, string(tag))
	}
	return strings.Join(parts, ",")
}

func decodeMedical(encoded string) []models.MedicalTag {
	if encoded == "" {
		return nil
	}
	var tags []models.MedicalTag
	for _, part := range strings.Split(encoded, ",") {
		if part != "" {
			tags = append(tags, models.MedicalTag(part))
		}
	}
	return tags
}
