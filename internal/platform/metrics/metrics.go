package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa las métricas Prometheus del catálogo y de adopciones.
// Un *Metrics nil es válido: todos los métodos son no-op.
type Metrics struct {
	CatalogQueryDuration prometheus.Histogram
	AnimalsCreated       prometheus.Counter
	SeedRuns             *prometheus.CounterVec
	AdoptionsCreated     prometheus.Counter
	AdoptionsRejected    *prometheus.CounterVec
}

// New registra las métricas en reg (usar un registry propio por router en tests).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CatalogQueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "adoption_catalog_query_duration_seconds",
			Help:    "Duration of catalog findAll queries (page + count)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AnimalsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "adoption_animals_created_total",
			Help: "Total number of animals created through the catalog",
		}),
		SeedRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_catalog_seed_total",
			Help: "Catalog seed attempts by result",
		}, []string{"result"}),
		AdoptionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "adoption_adoptions_created_total",
			Help: "Total number of adoption submissions recorded",
		}),
		AdoptionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_adoptions_rejected_total",
			Help: "Adoption submissions rejected by reason",
		}, []string{"reason"}),
	}
}

// ObserveCatalogQuery registra la duración de una consulta.
// Llamar con time.Now() al inicio de la operación.
func (m *Metrics) ObserveCatalogQuery(start time.Time) {
	if m == nil {
		return
	}
	m.CatalogQueryDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncAnimalsCreated() {
	if m == nil {
		return
	}
	m.AnimalsCreated.Inc()
}

func (m *Metrics) IncSeed(result string) {
	if m == nil {
		return
	}
	m.SeedRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) IncAdoptionsCreated() {
	if m == nil {
		return
	}
	m.AdoptionsCreated.Inc()
}

func (m *Metrics) IncAdoptionsRejected(reason string) {
	if m == nil {
		return
	}
	m.AdoptionsRejected.WithLabelValues(reason).Inc()
}
