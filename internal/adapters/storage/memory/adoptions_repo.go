package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"animal-adoption/internal/domain/adoptions"
)

type adoptionRepo struct {
	mu    sync.RWMutex
	items []adoptions.Adoption
	ids   map[string]struct{}
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		ids: make(map[string]struct{}),
	}
}

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	if _, exists := r.ids[a.ID]; exists {
		return errors.New("adoption already exists")
	}
	r.ids[a.ID] = struct{}{}
	r.items = append(r.items, a)
	return nil
}

func (r *adoptionRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}
