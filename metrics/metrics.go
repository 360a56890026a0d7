package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/vrischmann/go-metrics-influxdb"

	"github.com/prebid/prebid-client/config"
)

// AdapterMetrics holds the per-bidder instruments. Adapters mark the request
// side (RequestMeter, ErrorMeter, RequestTimer); the bid manager marks the
// response side (BidsReceivedMeter, NoBidMeter, PriceHistogram).
type AdapterMetrics struct {
	ErrorMeter        metrics.Meter
	NoBidMeter        metrics.Meter
	TimeoutMeter      metrics.Meter
	RequestMeter      metrics.Meter
	RequestTimer      metrics.Timer
	PriceHistogram    metrics.Histogram
	BidsReceivedMeter metrics.Meter
}

// Metrics is the process-wide registry wrapper. Per-bidder metrics are
// registered lazily so a bidder swapped into the registry at runtime still
// gets instrumented.
type Metrics struct {
	registry metrics.Registry

	RequestMeter metrics.Meter
	ErrorMeter   metrics.Meter
	RequestTimer metrics.Timer

	mu             sync.Mutex
	adapterMetrics map[string]*AdapterMetrics
}

// NewMetrics creates the metrics object on the given registry, pre-registering
// the named bidders.
func NewMetrics(registry metrics.Registry, bidders []string) *Metrics {
	m := &Metrics{
		registry:       registry,
		RequestMeter:   metrics.GetOrRegisterMeter("requests", registry),
		ErrorMeter:     metrics.GetOrRegisterMeter("error_requests", registry),
		RequestTimer:   metrics.GetOrRegisterTimer("request_time", registry),
		adapterMetrics: make(map[string]*AdapterMetrics, len(bidders)),
	}
	for _, bidder := range bidders {
		m.adapterMetrics[bidder] = registerAdapterMetrics(registry, bidder)
	}
	return m
}

// ForAdapter returns the metrics for the named bidder, registering them on
// first use.
func (m *Metrics) ForAdapter(bidder string) *AdapterMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	am, ok := m.adapterMetrics[bidder]
	if !ok {
		am = registerAdapterMetrics(m.registry, bidder)
		m.adapterMetrics[bidder] = am
	}
	return am
}

func registerAdapterMetrics(registry metrics.Registry, bidder string) *AdapterMetrics {
	return &AdapterMetrics{
		ErrorMeter:        metrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.error_requests", bidder), registry),
		NoBidMeter:        metrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.no_bid_requests", bidder), registry),
		TimeoutMeter:      metrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.timeout_requests", bidder), registry),
		RequestMeter:      metrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.requests", bidder), registry),
		RequestTimer:      metrics.GetOrRegisterTimer(fmt.Sprintf("adapter.%s.request_time", bidder), registry),
		PriceHistogram:    metrics.GetOrRegisterHistogram(fmt.Sprintf("adapter.%s.prices", bidder), registry, metrics.NewExpDecaySample(1028, 0.015)),
		BidsReceivedMeter: metrics.GetOrRegisterMeter(fmt.Sprintf("adapter.%s.bids_received", bidder), registry),
	}
}

// Setup creates the default registry and, when an influx host is configured,
// starts the reporter.
func Setup(cfg *config.Configuration, bidders []string) *Metrics {
	registry := metrics.NewPrefixedRegistry("prebidclient.")
	m := NewMetrics(registry, bidders)

	if cfg.Metrics.Host != "" {
		go influxdb.InfluxDB(
			registry,
			time.Second*10,
			cfg.Metrics.Host,
			cfg.Metrics.Database,
			cfg.Metrics.Username,
			cfg.Metrics.Password,
		)
	}
	return m
}
