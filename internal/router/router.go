package router

import (
	"database/sql"
	"net/http"

	_ "animal-adoption/docs"
	mem "animal-adoption/internal/adapters/storage/memory"
	pg "animal-adoption/internal/adapters/storage/postgres"
	"animal-adoption/internal/domain/adoptions"
	"animal-adoption/internal/domain/animals"
	"animal-adoption/internal/middleware"
	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// SeedEnabled habilita POST /animals/seed (solo development/test).
	SeedEnabled bool

	CORSOrigins []string

	Logger logger.Logger

	// Registry de métricas; si es nil se crea uno propio.
	Registry *prometheus.Registry
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		animalRepo   animals.Repository
		adoptionRepo adoptions.Repository
	)

	if opts.DB != nil {
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		adoptionRepo = pg.NewAdoptionsRepo(opts.DB)
	} else {
		animalRepo = mem.NewAnimalRepo()
		adoptionRepo = mem.NewAdoptionRepo()
	}

	animalsSvc := animals.NewService(animalRepo, animals.Options{
		SeedEnabled: opts.SeedEnabled,
		Metrics:     m,
	})
	// la adopción solo lee del store de animales (chequeo de existencia)
	adoptionsSvc := adoptions.NewService(adoptionRepo, animalRepo, m)

	animals.RegisterRoutes(r, animalsSvc, log)
	adoptions.RegisterRoutes(r, adoptionsSvc, log)

	return r
}
