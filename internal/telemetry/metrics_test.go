package telemetry

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// recordingMeter hands out counters that remember every Add.
type recordingMeter struct {
	noop.Meter
	mu   sync.Mutex
	adds map[string][]attribute.Set
}

type recordingCounter struct {
	noop.Int64Counter
	name  string
	meter *recordingMeter
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return &recordingCounter{name: name, meter: m}, nil
}

func (c *recordingCounter) Add(_ context.Context, incr int64, opts ...metric.AddOption) {
	cfg := metric.NewAddConfig(opts)
	c.meter.mu.Lock()
	defer c.meter.mu.Unlock()
	for i := int64(0); i < incr; i++ {
		c.meter.adds[c.name] = append(c.meter.adds[c.name], cfg.Attributes())
	}
}

func TestMetricsRecordToMeter(t *testing.T) {
	meter := &recordingMeter{adds: map[string][]attribute.Set{}}
	m, err := New(meter)
	require.NoError(t, err)

	m.Pickup("Sword")
	m.Drop("Sword")
	m.Hit("melee")
	m.Hit("projectile")
	m.Kill("melee")
	m.Cast()
	m.CastRejected("cooldown")

	require.Len(t, meter.adds["combat.hits"], 2)
	src, ok := meter.adds["combat.hits"][1].Value("source")
	require.True(t, ok)
	assert.Equal(t, "projectile", src.AsString())

	kind, ok := meter.adds["armory.pickups"][0].Value("kind")
	require.True(t, ok)
	assert.Equal(t, "Sword", kind.AsString())

	assert.Len(t, meter.adds["combat.casts.rejected"], 1)
	assert.Equal(t, Totals{Pickups: 1, Drops: 1, Hits: 2, Kills: 1, Casts: 1, CastsRejected: 1}, m.Totals())
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.Pickup("Staff")
	m.Hit("melee")
	m.CastRejected("cooldown")
	assert.Equal(t, Totals{}, m.Totals())
}

func TestNoopKeepsTotals(t *testing.T) {
	m := Noop()
	m.Cast()
	m.Cast()
	assert.Equal(t, int64(2), m.Totals().Casts)

	p, err := NewProvider(ProviderConfig{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	g, err := p.Metrics()
	require.NoError(t, err)
	g.Kill("projectile")
	assert.Equal(t, int64(1), g.Totals().Kills)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProviderExportsCountersOnShutdown(t *testing.T) {
	var out bytes.Buffer
	p, err := NewProvider(ProviderConfig{
		Enabled:     true,
		ServiceName: "edgeofdark-test",
		Writer:      &out,
		Interval:    time.Hour,
	})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	m, err := p.Metrics()
	require.NoError(t, err)
	m.Pickup("Staff")
	m.Hit("projectile")
	m.Hit("projectile")

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, out.String(), "armory.pickups")
	assert.Contains(t, out.String(), "combat.hits")
	assert.Contains(t, out.String(), "edgeofdark-test")
	assert.Equal(t, int64(2), m.Totals().Hits)
}

func TestProviderRequiresWriter(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Enabled: true})
	assert.Error(t, err)
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	m, closeMetrics, err := Setup(true, path, time.Hour, nil)
	require.NoError(t, err)
	m.Cast()
	require.NoError(t, closeMetrics())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "combat.casts")
}

func TestSetupDisabledKeepsLocalTotals(t *testing.T) {
	m, closeMetrics, err := Setup(false, "", 0, nil)
	require.NoError(t, err)
	m.Drop("Staff")
	assert.Equal(t, int64(1), m.Totals().Drops)
	assert.NoError(t, closeMetrics())
}
