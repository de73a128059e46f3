// Package metrics exposes recorder activity as Prometheus metrics.
//
// Metrics are registered with a dedicated registry and served over HTTP by the
// server binary at /metrics.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "activitylog"

// NewRegistry creates a registry with the standard Go and process collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}
	return reg, nil
}

// Handler returns an http.Handler for the /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Recorder implements activity.Metrics.
type Recorder struct {
	appended       prometheus.Counter
	collectionSize prometheus.Gauge
	loadRecovered  *prometheus.CounterVec
	saveFailures   prometheus.Counter
}

// NewRecorder creates the recorder metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Recorder{
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Activities written to the log.",
		}),
		collectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Number of activities in the log after the last successful write.",
		}),
		loadRecovered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_recovered_total",
			Help:      "Loads that fell back to an empty collection, by reason.",
		}, []string{"reason"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "Activities lost because the collection could not be written.",
		}),
	}

	for _, c := range []prometheus.Collector{r.appended, r.collectionSize, r.loadRecovered, r.saveFailures} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering recorder metrics: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) RecordAppended(collectionSize int) {
	r.appended.Inc()
	r.collectionSize.Set(float64(collectionSize))
}

func (r *Recorder) LoadRecovered(reason string) {
	r.loadRecovered.With(prometheus.Labels{"reason": reason}).Inc()
}

func (r *Recorder) SaveFailed() {
	r.saveFailures.Inc()
}
