// Package metrics defines the Prometheus collectors of the predictor and
// small helpers that record into them. Collectors are registered with the
// default registry and served by promhttp on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predictor_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "predictor_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Accounts
	AccountEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_account_events_total",
			Help: "Account workflow outcomes",
		},
		[]string{"event", "outcome"}, // event: login, register, restore_email, restore_answer, restore_password
	)

	// ML shell
	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "predictor_prediction_duration_seconds",
			Help:    "Duration of prediction runs including artifact writes",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_predictions_total",
			Help: "Prediction runs by outcome",
		},
		[]string{"outcome"},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "predictor_training_duration_seconds",
			Help:    "Duration of model retraining",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	TrainingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_trainings_total",
			Help: "Model retraining runs by outcome",
		},
		[]string{"outcome"},
	)

	MLShellBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "predictor_ml_shell_breaker_state",
			Help: "Circuit breaker state of the ML shell (0=closed, 1=half-open, 2=open)",
		},
	)

	// Sessions
	SessionsCleanedUp = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "predictor_sessions_cleaned_up_total",
			Help: "Expired sessions removed by the cleanup worker",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPRequestsInFlight.Inc()
	} else {
		HTTPRequestsInFlight.Dec()
	}
}

// RecordAccountEvent counts one account workflow outcome.
func RecordAccountEvent(event string, ok bool) {
	AccountEvents.WithLabelValues(event, outcome(ok)).Inc()
}

// RecordPrediction records a prediction run.
func RecordPrediction(duration time.Duration, err error) {
	PredictionDuration.Observe(duration.Seconds())
	PredictionsTotal.WithLabelValues(outcome(err == nil)).Inc()
}

// RecordTraining records a retraining run.
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	TrainingsTotal.WithLabelValues(outcome(err == nil)).Inc()
}

// RecordBreakerState exports a breaker transition. Its signature matches
// mlshell.BreakerSettings.OnStateChange.
func RecordBreakerState(_, to gobreaker.State) {
	MLShellBreakerState.Set(float64(to))
}

// RecordSessionCleanup adds removed sessions to the cleanup counter.
func RecordSessionCleanup(removed int) {
	SessionsCleanedUp.Add(float64(removed))
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
