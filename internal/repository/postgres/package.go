package postgres

import (
	"context"
	"database/sql"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

type packageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) ListActive(ctx context.Context) ([]domain.CreditPackage, error) {
	query := `SELECT id, name, credits, price_sek, COALESCE(description, ''), is_active
	          FROM credit_packages WHERE is_active = true ORDER BY credits ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.CreditPackage
	for rows.Next() {
		var p domain.CreditPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Credits, &p.PriceSEK, &p.Description, &p.IsActive); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

func (r *packageRepository) GetByID(ctx context.Context, id int64) (*domain.CreditPackage, error) {
	query := `SELECT id, name, credits, price_sek, COALESCE(description, ''), is_active
	          FROM credit_packages WHERE id = $1`
	var p domain.CreditPackage
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Credits, &p.PriceSEK, &p.Description, &p.IsActive)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
