package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"animal-adoption/internal/domain/animals"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const animalSelect = `
		SELECT
			id, name, age, gender, size, breed,
			is_vaccinated, is_neutered, traits, photo_url,
			created_at, updated_at
		FROM animals`

const animalReturning = `
		RETURNING
			id, name, age, gender, size, breed,
			is_vaccinated, is_neutered, traits, photo_url,
			created_at, updated_at`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const insertAnimalSQL = `
		INSERT INTO animals (
			id, name, age, gender, size, breed,
			is_vaccinated, is_neutered, traits, photo_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

func insertAnimal(ctx context.Context, db execer, a animals.Animal) error {
	traits := a.Traits
	if traits == nil {
		traits = []string{}
	}
	_, err := db.ExecContext(ctx, insertAnimalSQL,
		a.ID,
		a.Name,
		toNullInt(a.Age),
		string(a.Gender),
		string(a.Size),
		a.Breed,
		a.IsVaccinated,
		a.IsNeutered,
		traits,
		a.PhotoURL,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	return insertAnimal(ctx, r.db, a)
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	if !validID(id) {
		return animals.Animal{}, animals.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, animalSelect+` WHERE id = $1`, id)
	return scanOne(row)
}

func (r *AnimalsRepo) Update(ctx context.Context, id string, p animals.Patch, updatedAt time.Time) (animals.Animal, error) {
	if !validID(id) {
		return animals.Animal{}, animals.ErrNotFound
	}

	// COALESCE: un parámetro NULL deja la columna como está (patch parcial en un solo statement)
	var traits any
	if p.Traits != nil {
		t := *p.Traits
		if t == nil {
			t = []string{}
		}
		traits = t
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE animals
		SET
			name = COALESCE($2, name),
			age = COALESCE($3, age),
			gender = COALESCE($4, gender),
			size = COALESCE($5, size),
			breed = COALESCE($6, breed),
			is_vaccinated = COALESCE($7, is_vaccinated),
			is_neutered = COALESCE($8, is_neutered),
			traits = COALESCE($9::text[], traits),
			photo_url = COALESCE($10, photo_url),
			updated_at = $11
		WHERE id = $1`+animalReturning,
		id,
		toNullString(p.Name),
		toNullInt(p.Age),
		toNullString((*string)(p.Gender)),
		toNullString((*string)(p.Size)),
		toNullString(p.Breed),
		toNullBool(p.IsVaccinated),
		toNullBool(p.IsNeutered),
		traits,
		toNullString(p.PhotoURL),
		updatedAt,
	)
	return scanOne(row)
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) (animals.Animal, error) {
	if !validID(id) {
		return animals.Animal{}, animals.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `DELETE FROM animals WHERE id = $1`+animalReturning, id)
	return scanOne(row)
}

func (r *AnimalsRepo) List(ctx context.Context, q animals.Query) ([]animals.Animal, error) {
	where, args, err := buildWhere(q.Predicate, 1)
	if err != nil {
		return nil, err
	}

	n := len(args) + 1
	query := fmt.Sprintf("%s%s ORDER BY seq ASC LIMIT $%d OFFSET $%d", animalSelect, where, n, n+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := pgtype.NewMap()
	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows, types)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Count(ctx context.Context, p animals.Predicate) (int, error) {
	where, args, err := buildWhere(p, 1)
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM animals"+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *AnimalsRepo) DistinctBreeds(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT breed FROM animals`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ReplaceAll borra e inserta dentro de una transacción: o queda el set nuevo completo o el anterior.
func (r *AnimalsRepo) ReplaceAll(ctx context.Context, items []animals.Animal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM animals`); err != nil {
		return fmt.Errorf("clear animals: %w", err)
	}

	for _, a := range items {
		if err := insertAnimal(ctx, tx, a); err != nil {
			return fmt.Errorf("insert animal %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (animals.Animal, error) {
	a, err := scanAnimal(row, pgtype.NewMap())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

// pgtype.Map no es seguro para uso concurrente: uno por query.
func scanAnimal(s scanner, types *pgtype.Map) (animals.Animal, error) {
	var (
		a            animals.Animal
		age          sql.NullInt64
		gender, size string
		traits       []string
	)
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&age,
		&gender,
		&size,
		&a.Breed,
		&a.IsVaccinated,
		&a.IsNeutered,
		types.SQLScanner(&traits),
		&a.PhotoURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		a.Age = &v
	}
	a.Gender = animals.Gender(gender)
	a.Size = animals.Size(size)
	if traits == nil {
		traits = []string{}
	}
	a.Traits = traits

	return a, nil
}

// los ids son UUID; cualquier otra cosa no puede existir en la tabla
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func toNullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
