package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ProviderConfig controls metric export.
type ProviderConfig struct {
	Enabled     bool
	ServiceName string
	Writer      io.Writer     // exported metric batches go here (required when enabled)
	Interval    time.Duration // periodic export; zero uses the SDK default
}

// Provider owns the SDK meter provider. A disabled provider hands out noop
// meters and its Shutdown does nothing.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	config        ProviderConfig
}

// NewProvider builds a meter provider that periodically writes JSON batches
// to cfg.Writer and installs it as the global provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	p := &Provider{config: cfg}
	if !cfg.Enabled {
		return p, nil
	}
	if cfg.Writer == nil {
		return nil, errors.New("telemetry enabled but no writer configured")
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
	)
	otel.SetMeterProvider(p.meterProvider)
	return p, nil
}

// Meter returns a meter from the SDK provider, or a noop meter when disabled.
func (p *Provider) Meter(name string) metric.Meter {
	if p.meterProvider == nil {
		return noop.Meter{}
	}
	return p.meterProvider.Meter(name)
}

// Metrics builds the gameplay counters on this provider.
func (p *Provider) Metrics() (*Metrics, error) {
	return New(p.Meter(instrumentationName))
}

// Shutdown exports whatever is pending and stops the reader.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric shutdown failed: %w", err)
	}
	return nil
}

func (p *Provider) Enabled() bool {
	return p.meterProvider != nil
}

// Setup builds the gameplay metrics for a binary. When enabled, batches are
// written to file (appended) or to fallback when file is empty. The returned
// close func flushes the last batch and closes the file.
func Setup(enabled bool, file string, interval time.Duration, fallback io.Writer) (*Metrics, func() error, error) {
	if !enabled {
		return Noop(), func() error { return nil }, nil
	}

	w := fallback
	closeFile := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open metrics file: %w", err)
		}
		w = f
		closeFile = f.Close
	}

	p, err := NewProvider(ProviderConfig{
		Enabled:     true,
		ServiceName: "edgeofdark",
		Writer:      w,
		Interval:    interval,
	})
	if err != nil {
		closeFile()
		return nil, nil, err
	}
	m, err := p.Metrics()
	if err != nil {
		closeFile()
		return nil, nil, err
	}
	return m, func() error {
		return errors.Join(p.Shutdown(context.Background()), closeFile())
	}, nil
}
