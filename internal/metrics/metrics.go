// Package metrics exposes Prometheus instruments for the contact endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder groups the endpoint's counters and histograms.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	submissions   *prometheus.CounterVec
	emailDuration *prometheus.HistogramVec
	emailErrors   *prometheus.CounterVec
}

// NewRecorder creates the instruments and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_submissions_total",
			Help: "Contact requests handled, by outcome",
		}, []string{"outcome"}),
		emailDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contactform_email_send_duration_seconds",
			Help:    "Time taken to send notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		emailErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contactform_email_errors_total",
			Help: "Total number of email sending errors",
		}, []string{"provider"}),
	}

	reg.MustRegister(r.submissions, r.emailDuration, r.emailErrors)

	return r
}

// ObserveSubmission counts one handled request.
func (r *Recorder) ObserveSubmission(outcome string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
}

// ObserveEmailSend records the latency of one send and counts failures.
func (r *Recorder) ObserveEmailSend(provider string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.emailDuration.WithLabelValues(provider).Observe(d.Seconds())
	if err != nil {
		r.emailErrors.WithLabelValues(provider).Inc()
	}
}
