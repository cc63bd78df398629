// Package metrics exports the storefront counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"storefront/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "storefront"

// Recorder implements service.MetricsRecorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	cartMutations  *prometheus.CounterVec
	promoAttempts  *prometheus.CounterVec
	ordersPlaced   *prometheus.CounterVec
	ordersFailed   *prometheus.CounterVec
	orderDuration  prometheus.Histogram
	storeChanges   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewRecorder registers the storefront collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Cart mutations by command.",
		}, []string{"command"}),
		promoAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "promo_attempts_total",
			Help:      "Promo code attempts by outcome.",
		}, []string{"applied"}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "orders_placed_total",
			Help:      "Orders placed by payment method.",
		}, []string{"payment_method"}),
		ordersFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "orders_failed_total",
			Help:      "Orders that failed after validation, by stage.",
		}, []string{"reason"}),
		orderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "order_duration_seconds",
			Help:      "Time from submit to confirmation, including the payment step.",
			Buckets:   []float64{.1, .5, 1, 2, 3, 5, 10},
		}),
		storeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "changes_total",
			Help:      "Observed profile store writes by key and origin.",
		}, []string{"key", "origin"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.cartMutations,
		r.promoAttempts,
		r.ordersPlaced,
		r.ordersFailed,
		r.orderDuration,
		r.storeChanges,
		r.requestLatency,
	)

	return r
}

func (r *Recorder) CartMutation(command string) {
	r.cartMutations.WithLabelValues(command).Inc()
}

func (r *Recorder) PromoApplied(applied bool) {
	label := "false"
	if applied {
		label = "true"
	}
	r.promoAttempts.WithLabelValues(label).Inc()
}

func (r *Recorder) OrderPlaced(paymentMethod string, elapsed time.Duration) {
	r.ordersPlaced.WithLabelValues(paymentMethod).Inc()
	r.orderDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) OrderFailed(reason string) {
	r.ordersFailed.WithLabelValues(reason).Inc()
}

func (r *Recorder) StoreChange(key string, remote bool) {
	origin := "local"
	if remote {
		origin = "remote"
	}
	r.storeChanges.WithLabelValues(key, origin).Inc()
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(method, path, status string, elapsed time.Duration) {
	r.requestLatency.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Noop discards every measurement.
type Noop struct{}

func (Noop) CartMutation(string)               {}
func (Noop) PromoApplied(bool)                 {}
func (Noop) OrderPlaced(string, time.Duration) {}
func (Noop) OrderFailed(string)                {}
func (Noop) StoreChange(string, bool)          {}

// Module provides the Prometheus recorder FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRecorder,
		func(r *Recorder) service.MetricsRecorder { return r },
	),
	fx.Invoke(WatchStore),
)
