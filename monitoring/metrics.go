package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gq "nickandperla.net/genetic_queens"
)

var (
	generation = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nqueens_generation",
			Help: "Index of the generation currently being evolved",
		},
	)

	bestFitness = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nqueens_best_fitness",
			Help: "Fitness of the best individual in the current generation",
		},
	)

	meanFitness = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nqueens_mean_fitness",
			Help: "Mean fitness of the current generation",
		},
	)

	infeasible = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nqueens_infeasible_individuals",
			Help: "Individuals placed on a forbidden cell in the current generation",
		},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nqueens_runs_total",
			Help: "Finished runs by stop reason",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(generation)
	prometheus.MustRegister(bestFitness)
	prometheus.MustRegister(meanFitness)
	prometheus.MustRegister(infeasible)
	prometheus.MustRegister(runsTotal)
}

// Handler serves the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Reporter mirrors engine progress into the collectors above.
type Reporter struct{}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (Reporter) Generation(stats *gq.GenerationStats) error {
	generation.Set(float64(stats.Generation))
	meanFitness.Set(stats.MeanFitness)
	infeasible.Set(float64(stats.Infeasible))
	if best := stats.BestFitness(); !best.Infeasible {
		bestFitness.Set(float64(best.Value))
	}
	return nil
}

func (Reporter) Finish(result *gq.Result) error {
	generation.Set(float64(result.Generations))
	if result.Best != nil && !result.Best.Fitness.Infeasible {
		bestFitness.Set(float64(result.Best.Fitness.Value))
	}
	runsTotal.WithLabelValues(string(result.Reason)).Inc()
	return nil
}
