package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	retrainTotal    *prometheus.CounterVec
	retrainDuration *prometheus.HistogramVec
	retrainInFlight prometheus.Gauge
	modelAccuracy   *prometheus.GaugeVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	retrainTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopbot",
			Subsystem: "worker",
			Name:      "retrain_total",
			Help:      "Total retrain jobs by status.",
		},
		[]string{"service", "status"},
	)
	retrainDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopbot",
			Subsystem: "worker",
			Name:      "retrain_duration_seconds",
			Help:      "Retrain job duration in seconds by status.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "status"},
	)
	retrainInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shopbot",
			Subsystem: "worker",
			Name:      "retrain_in_flight",
			Help:      "Number of in-flight retrain jobs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	modelAccuracy := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "shopbot",
			Subsystem: "worker",
			Name:      "model_holdout_accuracy",
			Help:      "Holdout accuracy of the most recent trained model.",
		},
		[]string{"service"},
	)

	registry.MustRegister(retrainTotal, retrainDuration, retrainInFlight, modelAccuracy)

	return &WorkerMetrics{
		registry:        registry,
		retrainTotal:    retrainTotal,
		retrainDuration: retrainDuration,
		retrainInFlight: retrainInFlight,
		modelAccuracy:   modelAccuracy,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRetrain() {
	m.retrainInFlight.Inc()
}

func (m *WorkerMetrics) FinishRetrain(service string, duration time.Duration, err error) {
	m.retrainInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.retrainTotal.WithLabelValues(service, status).Inc()
	m.retrainDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) SetModelAccuracy(service string, accuracy float64) {
	m.modelAccuracy.WithLabelValues(service).Set(accuracy)
}
