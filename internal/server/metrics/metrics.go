// Package metrics holds the Prometheus collectors for the account service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeValidation         = "validation"
	OutcomeConflict           = "conflict"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInternal           = "internal"
)

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Authentications *prometheus.CounterVec
	HashDuration    prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophauth_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		Authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophauth_authentications_total",
				Help: "Total number of authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
		HashDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gophauth_password_hash_duration_seconds",
				Help:    "Time spent hashing or verifying passwords",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.Registrations, m.Authentications, m.HashDuration)
	return m
}

func (m *Metrics) RecordRegistration(err error) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) RecordAuthentication(err error) {
	if m == nil {
		return
	}
	m.Authentications.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) ObserveHash(d time.Duration) {
	if m == nil {
		return
	}
	m.HashDuration.Observe(d.Seconds())
}

// Outcome maps a service result to its label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, common.ErrorValidation):
		return OutcomeValidation
	case errors.Is(err, common.ErrorConflict):
		return OutcomeConflict
	case errors.Is(err, common.ErrorUnauthorized):
		return OutcomeInvalidCredentials
	default:
		return OutcomeInternal
	}
}
