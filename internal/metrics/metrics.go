package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/ostafen/growtable/pkg/table"
)

const (
	namespace = "growtable"
	subsystem = "table"
)

// Collector owns the metric vectors shared by every tracked table. Tables
// are told apart by the "table" label.
type Collector struct {
	inserts  *prometheus.CounterVec
	searches *prometheus.CounterVec
	removes  *prometheus.CounterVec
	resizes  *prometheus.CounterVec
	capacity *prometheus.GaugeVec
	entries  *prometheus.GaugeVec
}

func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inserts_total",
				Help:      "Number of successful insertions, by whether a new entry was added or an existing one updated",
			},
			[]string{"table", "outcome"}),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "searches_total",
				Help:      "Number of lookups, by whether the key was found",
			},
			[]string{"table", "outcome"}),
		removes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "removes_total",
				Help:      "Number of removals, by whether the key was found",
			},
			[]string{"table", "outcome"}),
		resizes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resizes_total",
				Help:      "Number of times the table doubled its capacity",
			},
			[]string{"table"}),
		capacity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "capacity",
				Help:      "Current number of cells of the table",
			},
			[]string{"table"}),
		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "entries",
				Help:      "Current number of entries stored in the table",
			},
			[]string{"table"}),
	}

	for _, m := range []prometheus.Collector{c.inserts, c.searches, c.removes, c.resizes, c.capacity, c.entries} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register table metrics: %w", err)
		}
	}
	return c, nil
}

// Track returns a table.Observer bound to the table called name, whose
// initial capacity is capacity.
func (c *Collector) Track(name string, capacity int) *Tracker {
	t := &Tracker{
		inserted:   c.inserts.WithLabelValues(name, "inserted"),
		updated:    c.inserts.WithLabelValues(name, "updated"),
		searchHit:  c.searches.WithLabelValues(name, "found"),
		searchMiss: c.searches.WithLabelValues(name, "missing"),
		removeHit:  c.removes.WithLabelValues(name, "found"),
		removeMiss: c.removes.WithLabelValues(name, "missing"),
		resizes:    c.resizes.WithLabelValues(name),
		capacity:   c.capacity.WithLabelValues(name),
		entries:    c.entries.WithLabelValues(name),
	}
	t.capacity.Set(float64(capacity))
	return t
}

type Tracker struct {
	inserted, updated     prometheus.Counter
	searchHit, searchMiss prometheus.Counter
	removeHit, removeMiss prometheus.Counter
	resizes               prometheus.Counter
	capacity, entries     prometheus.Gauge
}

var _ table.Observer = (*Tracker)(nil)

func (t *Tracker) Inserted(updated bool) {
	if updated {
		t.updated.Inc()
		return
	}
	t.inserted.Inc()
	t.entries.Inc()
}

func (t *Tracker) Searched(found bool) {
	if found {
		t.searchHit.Inc()
	} else {
		t.searchMiss.Inc()
	}
}

func (t *Tracker) Removed(found bool) {
	if !found {
		t.removeMiss.Inc()
		return
	}
	t.removeHit.Inc()
	t.entries.Dec()
}

func (t *Tracker) Resized(capacity int) {
	t.resizes.Inc()
	t.capacity.Set(float64(capacity))
}

// Destroyed zeroes the gauges. Counters keep their totals.
func (t *Tracker) Destroyed() {
	t.capacity.Set(0)
	t.entries.Set(0)
}

// Dump writes every metric family gathered from g in the Prometheus text
// exposition format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// Summary condenses the families gathered from g into name=value pairs,
// one per series, for log output.
func Summary(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out = append(out, mf.GetName()+labels(m)+"="+strconv.FormatFloat(value(mf.GetType(), m), 'g', -1, 64))
		}
	}
	return out, nil
}

func labels(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}

	s := "{"
	for i, p := range pairs {
		if i > 0 {
			s += ","
		}
		s += p.GetName() + "=" + strconv.Quote(p.GetValue())
	}
	return s + "}"
}

func value(typ dto.MetricType, m *dto.Metric) float64 {
	switch typ {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue()
	}
	return 0
}
