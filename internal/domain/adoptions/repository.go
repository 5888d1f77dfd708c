package adoptions

import (
	"context"

	"animal-adoption/internal/domain/animals"
)

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks Repository,AnimalLookup

// Repository es append-only: no expone update ni delete.
type Repository interface {
	Create(ctx context.Context, a Adoption) error
	Count(ctx context.Context) (int, error)
}

// AnimalLookup resuelve el animal referenciado (lectura sobre el store de animales).
type AnimalLookup interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}
