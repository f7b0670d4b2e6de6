// Package metrics provides Prometheus metrics for the vfsh engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	vfserrors "github.com/mwantia/vfsh/data/errors"
)

var (
	// Namespace operation metrics
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfsh_operations_total",
			Help: "Total number of namespace operations",
		},
		[]string{"operation", "result"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vfsh_operation_duration_seconds",
			Help:    "Namespace operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	permissionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfsh_permission_checks_total",
			Help: "Total permission checks",
		},
		[]string{"action", "result"},
	)

	// Store metrics
	storeEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vfsh_store_entries",
			Help: "Number of entries held by the entry store",
		},
	)

	persistTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfsh_persist_total",
			Help: "Total entry store persist attempts",
		},
		[]string{"backend", "status"},
	)

	persistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vfsh_persist_duration_seconds",
			Help:    "Time to rewrite the full entry list",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Session metrics
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vfsh_logins_total",
			Help: "Total login attempts",
		},
		[]string{"result"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes the metrics handler on address until ctx is cancelled.
func Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Result maps an operation error onto a short label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, vfserrors.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, vfserrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, vfserrors.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, vfserrors.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, vfserrors.ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, vfserrors.ErrCapacity):
		return "capacity"
	case errors.Is(err, vfserrors.ErrPersist):
		return "persist"
	default:
		return "error"
	}
}

// RecordOperation records a namespace operation and its outcome.
func RecordOperation(operation string, err error, duration time.Duration) {
	operationsTotal.WithLabelValues(operation, Result(err)).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPermissionCheck records an evaluated permission check.
func RecordPermissionCheck(action string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	permissionChecksTotal.WithLabelValues(action, result).Inc()
}

// SetStoreEntries sets the current number of stored entries.
func SetStoreEntries(count int) {
	storeEntries.Set(float64(count))
}

// RecordPersist records a persist attempt against backend.
func RecordPersist(backend string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	persistTotal.WithLabelValues(backend, status).Inc()
	persistDuration.Observe(duration.Seconds())
}

// RecordLogin records a login attempt.
func RecordLogin(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	loginsTotal.WithLabelValues(result).Inc()
}
