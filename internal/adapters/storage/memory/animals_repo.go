package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"animal-adoption/internal/domain/animals"
)

// animalRepo guarda los animales en orden de inserción (orden natural del catálogo).
type animalRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = clone(a)
	r.order = append(r.order, a.ID)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return clone(a), nil
}

func (r *animalRepo) Update(ctx context.Context, id string, patch animals.Patch, updatedAt time.Time) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	a = patch.Apply(a)
	a.UpdatedAt = updatedAt
	r.byID[id] = a
	return clone(a), nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return a, nil
}

func (r *animalRepo) List(ctx context.Context, q animals.Query) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	skipped := 0
	for _, id := range r.order {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		a := r.byID[id]
		if !q.Predicate.Matches(a) {
			continue
		}
		if skipped < q.Offset {
			skipped++
			continue
		}
		out = append(out, clone(a))
	}
	return out, nil
}

func (r *animalRepo) Count(ctx context.Context, p animals.Predicate) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p.IsEmpty() {
		return len(r.order), nil
	}
	n := 0
	for _, id := range r.order {
		if p.Matches(r.byID[id]) {
			n++
		}
	}
	return n, nil
}

func (r *animalRepo) DistinctBreeds(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, id := range r.order {
		b := r.byID[id].Breed
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out, nil
}

func (r *animalRepo) ReplaceAll(ctx context.Context, items []animals.Animal) error {
	byID := make(map[string]animals.Animal, len(items))
	order := make([]string, 0, len(items))
	for _, a := range items {
		if strings.TrimSpace(a.ID) == "" {
			return errors.New("animal id required")
		}
		if _, exists := byID[a.ID]; exists {
			return errors.New("animal already exists")
		}
		byID[a.ID] = clone(a)
		order = append(order, a.ID)
	}

	// swap bajo lock: los lectores ven el catálogo viejo o el nuevo, nunca una mezcla
	r.mu.Lock()
	r.byID = byID
	r.order = order
	r.mu.Unlock()
	return nil
}

// clone evita que los llamadores compartan slices/punteros con el store.
func clone(a animals.Animal) animals.Animal {
	if a.Age != nil {
		age := *a.Age
		a.Age = &age
	}
	a.Traits = append([]string{}, a.Traits...)
	return a
}
