package animals

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// Update aplica el patch de forma atómica por registro y devuelve el animal actualizado.
	Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (Animal, error)
	Delete(ctx context.Context, id string) (Animal, error)

	List(ctx context.Context, q Query) ([]Animal, error)
	Count(ctx context.Context, p Predicate) (int, error)
	DistinctBreeds(ctx context.Context) ([]string, error)

	// ReplaceAll borra toda la colección e inserta items (seed destructivo).
	ReplaceAll(ctx context.Context, items []Animal) error
}

// Patch es una actualización parcial: nil = no tocar.
// Los valores llegan ya normalizados desde el Service.
type Patch struct {
	Name         *string
	Age          *int
	Gender       *Gender
	Size         *Size
	Breed        *string
	IsVaccinated *bool
	IsNeutered   *bool
	Traits       *[]string
	PhotoURL     *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Gender == nil && p.Size == nil && p.Breed == nil &&
		p.IsVaccinated == nil && p.IsNeutered == nil && p.Traits == nil && p.PhotoURL == nil
}

// Apply devuelve una copia de a con los campos presentes del patch.
func (p Patch) Apply(a Animal) Animal {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Age != nil {
		age := *p.Age
		a.Age = &age
	}
	if p.Gender != nil {
		a.Gender = *p.Gender
	}
	if p.Size != nil {
		a.Size = *p.Size
	}
	if p.Breed != nil {
		a.Breed = *p.Breed
	}
	if p.IsVaccinated != nil {
		a.IsVaccinated = *p.IsVaccinated
	}
	if p.IsNeutered != nil {
		a.IsNeutered = *p.IsNeutered
	}
	if p.Traits != nil {
		a.Traits = append([]string{}, (*p.Traits)...)
	}
	if p.PhotoURL != nil {
		a.PhotoURL = *p.PhotoURL
	}
	return a
}
