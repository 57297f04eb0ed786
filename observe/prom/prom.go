// Package prom exposes guard lifecycle events as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-guard/guard"
)

// Observer implements guard.Observer on top of a Prometheus registry.
// One Observer may serve any number of scopes.
type Observer struct {
	live       prometheus.Gauge
	scopes     *prometheus.CounterVec
	registered *prometheus.CounterVec
	fired      *prometheus.CounterVec
	skipped    *prometheus.CounterVec
}

// New builds an Observer and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "guard",
			Name:      "scopes_live",
			Help:      "Scopes created but not yet exited.",
		}),
		scopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "scopes_total",
			Help:      "Scopes exited, by outcome.",
		}, []string{"outcome"}),
		registered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "actions_registered_total",
			Help:      "Actions registered, by kind.",
		}, []string{"kind"}),
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "actions_fired_total",
			Help:      "Actions that ran at scope exit, by kind.",
		}, []string{"kind"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "actions_skipped_total",
			Help:      "Actions gated out at scope exit, by kind.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{o.live, o.scopes, o.registered, o.fired, o.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MustNew is New panicking on registration failure, for use in main.
func MustNew(reg prometheus.Registerer) *Observer {
	o, err := New(reg)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Observer) ScopeCreated() { o.live.Inc() }

func (o *Observer) ScopeExited(failed bool) {
	o.live.Dec()
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	o.scopes.WithLabelValues(outcome).Inc()
}

func (o *Observer) GuardRegistered(kind guard.Kind) {
	o.registered.WithLabelValues(kind.String()).Inc()
}

func (o *Observer) GuardFired(kind guard.Kind) {
	o.fired.WithLabelValues(kind.String()).Inc()
}

func (o *Observer) GuardSkipped(kind guard.Kind) {
	o.skipped.WithLabelValues(kind.String()).Inc()
}
