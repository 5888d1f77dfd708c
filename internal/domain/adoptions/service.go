package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-adoption/internal/domain/animals"
	"animal-adoption/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrAnimalNotFound envuelve animals.ErrNotFound: errors.Is funciona con ambos.
	ErrAnimalNotFound = fmt.Errorf("adoption target: %w", animals.ErrNotFound)
)

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
	newID   func() string
	metrics *metrics.Metrics
}

func NewService(repo Repository, lookup AnimalLookup, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		animals: lookup,
		now:     time.Now,
		newID:   uuid.NewString,
		metrics: m,
	}
}

// Adopt verifica que el animal exista y recién entonces crea la adopción.
// Si el animal no existe devuelve ErrAnimalNotFound sin escribir nada.
//
// El chequeo y la escritura no son atómicos: un delete concurrente entre ambos
// pasos puede dejar una adopción apuntando a un animal ya borrado.
func (s *Service) Adopt(ctx context.Context, in Submission) (Adoption, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	if animalID == "" || isBlank(in.Name) || isBlank(in.Email) || isBlank(in.Phone) || isBlank(in.Message) {
		s.metrics.IncAdoptionsRejected("invalid")
		return Adoption{}, ErrInvalidInput
	}

	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			s.metrics.IncAdoptionsRejected("animal_not_found")
			return Adoption{}, ErrAnimalNotFound
		}
		return Adoption{}, err
	}

	a := Adoption{
		ID:        s.newID(),
		AnimalID:  animalID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Adoption{}, err
	}

	s.metrics.IncAdoptionsCreated()
	return a, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
