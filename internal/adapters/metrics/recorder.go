// Package metrics counts resolution outcomes with Prometheus.
package metrics

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	namespace = "annocache"
	// OutcomeLabel is the label carrying the domain.Outcome of a resolution.
	OutcomeLabel = "outcome"
)

var (
	_ ports.Recorder = (*PrometheusRecorder)(nil)
	_ ports.Recorder = NopRecorder{}
)

// PrometheusRecorder counts resolutions per outcome.
type PrometheusRecorder struct {
	gatherer    prometheus.Gatherer
	resolutions *prometheus.CounterVec
}

// NewPrometheusRecorder registers annocache_resolutions_total on reg.
// Every outcome is pre-initialized so that zero counts are exported.
func NewPrometheusRecorder(reg *prometheus.Registry) *PrometheusRecorder {
	resolutions := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Total number of annotation resolutions by outcome",
		},
		[]string{OutcomeLabel},
	)
	for _, o := range domain.Outcomes() {
		resolutions.WithLabelValues(string(o))
	}
	return &PrometheusRecorder{gatherer: reg, resolutions: resolutions}
}

// Record counts one resolution.
func (r *PrometheusRecorder) Record(outcome domain.Outcome) {
	r.resolutions.WithLabelValues(string(outcome)).Inc()
}

// Counter returns the counter of outcome.
func (r *PrometheusRecorder) Counter(outcome domain.Outcome) prometheus.Counter {
	return r.resolutions.WithLabelValues(string(outcome))
}

// WriteText writes every metric of the registry in the Prometheus text
// exposition format.
func (r *PrometheusRecorder) WriteText(w io.Writer) error {
	families, err := r.gatherer.Gather()
	if err != nil {
		return zerr.Wrap(err, "failed to gather metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return zerr.Wrap(err, "failed to encode metrics")
		}
	}
	return nil
}

// Handler serves the registry for scraping.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// NopRecorder discards outcomes.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(domain.Outcome) {}
