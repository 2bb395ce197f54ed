package ghost

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts snapshot lifecycle activity. A nil *Metrics records nothing.
type Metrics struct {
	created   *prometheus.CounterVec
	deleted   *prometheus.CounterVec
	live      prometheus.Gauge
	slots     prometheus.Gauge
	reconnect prometheus.Counter
}

// NewMetrics creates the ghost collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ghost",
			Name:      "snapshots_created_total",
			Help:      "Snapshots created, by character.",
		}, []string{"character"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ghost",
			Name:      "snapshots_deleted_total",
			Help:      "Snapshots deleted, by deletion mode.",
		}, []string{"mode"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ghost",
			Name:      "snapshots_live",
			Help:      "Snapshots currently parented under the container.",
		}),
		slots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ghost",
			Name:      "render_slots_wired",
			Help:      "Populated input slots on the outline render node.",
		}),
		reconnect: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ghost",
			Name:      "render_slot_reconnects_total",
			Help:      "Input slots disconnected or reconnected by wiring passes.",
		}),
	}
	for _, c := range []prometheus.Collector{m.created, m.deleted, m.live, m.slots, m.reconnect} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register ghost metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) snapshotCreated(character string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(character).Inc()
}

func (m *Metrics) snapshotsDeleted(mode DeleteMode, n int) {
	if m == nil || n == 0 {
		return
	}
	m.deleted.WithLabelValues(mode.String()).Add(float64(n))
}

func (m *Metrics) observe(live, slots, reconnects int) {
	if m == nil {
		return
	}
	m.live.Set(float64(live))
	m.slots.Set(float64(slots))
	m.reconnect.Add(float64(reconnects))
}
