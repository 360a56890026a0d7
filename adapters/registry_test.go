package adapters

import (
	"testing"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"

	"github.com/prebid/prebid-client/metrics"
	"github.com/prebid/prebid-client/pbc"
)

func TestRegistry(t *testing.T) {
	m := metrics.NewMetrics(gometrics.NewRegistry(), nil)
	bm := pbc.NewBidManager(m)
	adapter := NewAmazonAdapter(&fakeScriptLoader{}, bm, m, "http://localhost/amzn_ads.js", false)

	registry := NewRegistry()
	assert.NoError(t, registry.Register(adapter))
	assert.Error(t, registry.Register(adapter), "duplicate names must be rejected")

	got, ok := registry.Get("amazon")
	assert.True(t, ok)
	assert.Equal(t, adapter, got)
	assert.Equal(t, []string{"amazon"}, registry.Names())

	registry.Unregister("amazon")
	_, ok = registry.Get("amazon")
	assert.False(t, ok)
	assert.Empty(t, registry.Names())
}
