// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lvlopt"

// Recorder holds the compiler metrics.
type Recorder struct {
	assemblies       prometheus.Counter
	records          prometheus.Gauge
	assemblyDuration prometheus.Histogram
	compiled         prometheus.Counter
	solves           *prometheus.CounterVec
	solveDuration    *prometheus.HistogramVec
}

// NewRecorder creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		assemblies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assemblies_total",
			Help:      "Completed assembly passes.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "problem_records",
			Help:      "Problem records produced by the last assembly pass.",
		}),
		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Latency of assembly passes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		compiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiled_results_total",
			Help:      "Results produced by expression compilation.",
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Engine calls by terminal status.",
		}, []string{"status"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Latency of engine calls by terminal status.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"status"}),
	}
	if reg == nil {
		return r, nil
	}
	for _, c := range []prometheus.Collector{
		r.assemblies, r.records, r.assemblyDuration, r.compiled, r.solves, r.solveDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveAssembly records one assembly pass.
func (r *Recorder) ObserveAssembly(records int, d time.Duration) {
	if r == nil {
		return
	}
	r.assemblies.Inc()
	r.records.Set(float64(records))
	r.assemblyDuration.Observe(d.Seconds())
}

// ObserveCompile records the results of one compiled expression.
func (r *Recorder) ObserveCompile(results int) {
	if r == nil {
		return
	}
	r.compiled.Add(float64(results))
}

// ObserveSolve records one engine call.
func (r *Recorder) ObserveSolve(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(status).Inc()
	r.solveDuration.WithLabelValues(status).Observe(d.Seconds())
}
