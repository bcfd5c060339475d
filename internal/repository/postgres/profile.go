package postgres

import (
	"context"
	"database/sql"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT id, user_id, email, COALESCE(full_name, ''), credits, created_on, updated_on
	          FROM profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&p.ID, &p.UserID, &p.Email, &p.FullName, &p.Credits, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, email, full_name, credits, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query, profile.UserID, profile.Email, profile.FullName, profile.Credits).
		Scan(&profile.ID, &profile.CreatedOn, &profile.UpdatedOn)
	return mapError(err)
}
