package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder captures gateway counters. Handlers and the engine take the
// interface so tests can pass Noop.
type Recorder interface {
	IncExtraction(op, outcome string)
	AddStreamedBytes(n int64)
	IncJanitorRemoved()
}

// Noop implements Recorder without emitting anything.
type Noop struct{}

func (Noop) IncExtraction(string, string) {}
func (Noop) AddStreamedBytes(int64)       {}
func (Noop) IncJanitorRemoved()           {}

// Prom implements Recorder backed by Prometheus counters.
type Prom struct {
	extractions    *prometheus.CounterVec
	streamedBytes  prometheus.Counter
	janitorRemoved prometheus.Counter
	once           sync.Once
}

func NewProm(namespace string) *Prom {
	p := &Prom{
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Extractor invocations by operation and outcome",
		}, []string{"op", "outcome"}),
		streamedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streamed_bytes_total",
			Help:      "Media bytes relayed to clients",
		}),
		janitorRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "janitor_removed_total",
			Help:      "Scratch directory entries removed by the janitor",
		}),
	}
	p.register()
	return p
}

func (p *Prom) register() {
	p.once.Do(func() {
		prometheus.MustRegister(p.extractions, p.streamedBytes, p.janitorRemoved)
	})
}

func (p *Prom) IncExtraction(op, outcome string) {
	p.extractions.WithLabelValues(op, outcome).Inc()
}

func (p *Prom) AddStreamedBytes(n int64) {
	p.streamedBytes.Add(float64(n))
}

func (p *Prom) IncJanitorRemoved() {
	p.janitorRemoved.Inc()
}

// Handler exposes the default registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
