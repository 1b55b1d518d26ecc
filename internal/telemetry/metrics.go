package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "edgeofdark/internal/telemetry"

// Metrics counts gameplay events. Counters go to the OTel meter it was built
// with; running totals are also kept locally for the debug HUD and the
// headless runner's summary. A nil *Metrics is valid and records nothing.
type Metrics struct {
	pickups       metric.Int64Counter
	drops         metric.Int64Counter
	hits          metric.Int64Counter
	kills         metric.Int64Counter
	casts         metric.Int64Counter
	castsRejected metric.Int64Counter

	totals struct {
		pickups, drops, hits, kills, casts, castsRejected atomic.Int64
	}
}

// Totals is a point-in-time copy of the local counters.
type Totals struct {
	Pickups       int64
	Drops         int64
	Hits          int64
	Kills         int64
	Casts         int64
	CastsRejected int64
}

// New creates the counters on m.
func New(m metric.Meter) (*Metrics, error) {
	var (
		t   Metrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&t.pickups, "armory.pickups", "Objects acquired by a carrier"},
		{&t.drops, "armory.drops", "Objects released by a carrier"},
		{&t.hits, "combat.hits", "Damage applications"},
		{&t.kills, "combat.kills", "Targets whose health reached zero"},
		{&t.casts, "combat.casts", "Projectiles launched"},
		{&t.castsRejected, "combat.casts.rejected", "Cast requests rejected by cooldown or missing references"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}
	return &t, nil
}

// Noop returns metrics that only keep local totals.
func Noop() *Metrics {
	m, _ := New(noop.Meter{})
	return m
}

func (m *Metrics) Pickup(kind string) {
	if m == nil {
		return
	}
	m.totals.pickups.Add(1)
	m.pickups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) Drop(kind string) {
	if m == nil {
		return
	}
	m.totals.drops.Add(1)
	m.drops.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Hit records a damage application from source ("melee" or "projectile").
func (m *Metrics) Hit(source string) {
	if m == nil {
		return
	}
	m.totals.hits.Add(1)
	m.hits.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", source)))
}

func (m *Metrics) Kill(source string) {
	if m == nil {
		return
	}
	m.totals.kills.Add(1)
	m.kills.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", source)))
}

func (m *Metrics) Cast() {
	if m == nil {
		return
	}
	m.totals.casts.Add(1)
	m.casts.Add(context.Background(), 1)
}

// CastRejected records a refused cast with its reason.
func (m *Metrics) CastRejected(reason string) {
	if m == nil {
		return
	}
	m.totals.castsRejected.Add(1)
	m.castsRejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) Totals() Totals {
	if m == nil {
		return Totals{}
	}
	return Totals{
		Pickups:       m.totals.pickups.Load(),
		Drops:         m.totals.drops.Load(),
		Hits:          m.totals.hits.Load(),
		Kills:         m.totals.kills.Load(),
		Casts:         m.totals.casts.Load(),
		CastsRejected: m.totals.castsRejected.Load(),
	}
}
