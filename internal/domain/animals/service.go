package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-adoption/internal/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	// ErrSeedDisabled: seed pedido fuera de un entorno que lo permita.
	ErrSeedDisabled = errors.New("seed is disabled in this environment")
)

type Options struct {
	// SeedEnabled habilita el reemplazo destructivo del catálogo. Nunca true en producción.
	SeedEnabled bool
	Metrics     *metrics.Metrics
}

// Service es el motor de consultas del catálogo.
type Service struct {
	repo        Repository
	now         func() time.Time
	newID       func() string
	seedEnabled bool
	metrics     *metrics.Metrics
}

func NewService(repo Repository, opts Options) *Service {
	return &Service{
		repo:        repo,
		now:         time.Now,
		newID:       uuid.NewString,
		seedEnabled: opts.SeedEnabled,
		metrics:     opts.Metrics,
	}
}

// Result es una página del catálogo.
type Result struct {
	Items    []Animal
	Page     int
	LastPage int
	Total    int
}

type FilterOptions struct {
	Breeds []string
}

type CreateInput struct {
	Name         string
	Age          *int
	Gender       string
	Size         string
	Breed        string
	IsVaccinated bool
	IsNeutered   bool
	Traits       []string
	PhotoURL     string
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name         *string
	Age          *int
	Gender       *string
	Size         *string
	Breed        *string
	IsVaccinated *bool
	IsNeutered   *bool
	Traits       *[]string
	PhotoURL     *string
}

// SeedEnabled indica si Seed está permitido en este entorno.
func (s *Service) SeedEnabled() bool {
	return s.seedEnabled
}

// FindAll devuelve la página pedida y el número de la última página.
// La página y el conteo se consultan en paralelo sobre el mismo predicado.
func (s *Service) FindAll(ctx context.Context, f Filter) (Result, error) {
	defer s.metrics.ObserveCatalogQuery(time.Now())

	pred := NewPredicate(f)
	q, page := PageQuery(pred, f.Page)

	var (
		items []Animal
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if items == nil {
		items = []Animal{}
	}

	return Result{
		Items:    items,
		Page:     page,
		LastPage: LastPage(total),
		Total:    total,
	}, nil
}

// GetFilterOptions devuelve las razas distintas presentes (sin orden garantizado).
func (s *Service) GetFilterOptions(ctx context.Context) (FilterOptions, error) {
	breeds, err := s.repo.DistinctBreeds(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	if breeds == nil {
		breeds = []string{}
	}
	return FilterOptions{Breeds: breeds}, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	a, err := s.build(in, s.now())
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	s.metrics.IncAnimalsCreated()
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}

	patch, err := toPatch(in)
	if err != nil {
		return Animal{}, err
	}
	if patch.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch, s.now())
}

func (s *Service) Delete(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Seed reemplaza todo el catálogo por items.
// Falla con ErrSeedDisabled antes de tocar el storage si no está habilitado,
// y con ErrInvalidInput si algún item no es válido (sin efecto parcial).
func (s *Service) Seed(ctx context.Context, items []CreateInput) error {
	if !s.seedEnabled {
		s.metrics.IncSeed("rejected")
		return ErrSeedDisabled
	}

	now := s.now()
	out := make([]Animal, 0, len(items))
	for _, in := range items {
		a, err := s.build(in, now)
		if err != nil {
			s.metrics.IncSeed("invalid")
			return err
		}
		out = append(out, a)
	}

	if err := s.repo.ReplaceAll(ctx, out); err != nil {
		s.metrics.IncSeed("error")
		return err
	}
	s.metrics.IncSeed("ok")
	return nil
}

func (s *Service) build(in CreateInput, now time.Time) (Animal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Animal{}, ErrInvalidInput
	}
	breed := normalize(in.Breed)
	if breed == "" {
		return Animal{}, ErrInvalidInput
	}
	gender := Gender(normalize(in.Gender))
	if !gender.Valid() {
		return Animal{}, ErrInvalidInput
	}
	size := Size(normalize(in.Size))
	if !size.Valid() {
		return Animal{}, ErrInvalidInput
	}

	var age *int
	if in.Age != nil {
		if *in.Age < 0 {
			return Animal{}, ErrInvalidInput
		}
		v := *in.Age
		age = &v
	}

	traits := append([]string{}, in.Traits...)

	return Animal{
		ID:           s.newID(),
		Name:         name,
		Age:          age,
		Gender:       gender,
		Size:         size,
		Breed:        breed,
		IsVaccinated: in.IsVaccinated,
		IsNeutered:   in.IsNeutered,
		Traits:       traits,
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func toPatch(in UpdateInput) (Patch, error) {
	var p Patch

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Patch{}, ErrInvalidInput
		}
		p.Name = &v
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Patch{}, ErrInvalidInput
		}
		v := *in.Age
		p.Age = &v
	}
	if in.Gender != nil {
		v := Gender(normalize(*in.Gender))
		if !v.Valid() {
			return Patch{}, ErrInvalidInput
		}
		p.Gender = &v
	}
	if in.Size != nil {
		v := Size(normalize(*in.Size))
		if !v.Valid() {
			return Patch{}, ErrInvalidInput
		}
		p.Size = &v
	}
	if in.Breed != nil {
		v := normalize(*in.Breed)
		if v == "" {
			return Patch{}, ErrInvalidInput
		}
		p.Breed = &v
	}
	if in.Traits != nil {
		v := append([]string{}, (*in.Traits)...)
		p.Traits = &v
	}
	if in.PhotoURL != nil {
		v := strings.TrimSpace(*in.PhotoURL)
		p.PhotoURL = &v
	}
	p.IsVaccinated = in.IsVaccinated
	p.IsNeutered = in.IsNeutered

	return p, nil
}
