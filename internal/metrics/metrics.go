package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeTaken       = "taken"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
	OutcomeNotClaimed  = "not_claimed"
	OutcomeAlreadyPaid = "already_paid"
)

// Recorder counts registry transitions and HTTP traffic.
type Recorder struct {
	Claims        *prometheus.CounterVec
	Confirmations *prometheus.CounterVec
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)

	return &Recorder{
		Claims: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle",
			Name:      "claims_total",
			Help:      "Claim attempts by outcome.",
		}, []string{"outcome"}),
		Confirmations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle",
			Name:      "confirmations_total",
			Help:      "Payment confirmation attempts by outcome.",
		}, []string{"outcome"}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raffle",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "raffle",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (r *Recorder) Claim(outcome string) {
	if r == nil {
		return
	}
	r.Claims.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Confirmation(outcome string) {
	if r == nil {
		return
	}
	r.Confirmations.WithLabelValues(outcome).Inc()
}
