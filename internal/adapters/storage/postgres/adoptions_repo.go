package postgres

import (
	"context"
	"database/sql"

	"animal-adoption/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (
			id, animal_id,
			name, email, phone, message,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.AnimalID,
		a.Name,
		a.Email,
		a.Phone,
		a.Message,
		a.CreatedAt,
	)
	return err
}

func (r *AdoptionsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM adoptions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
