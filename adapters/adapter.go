package adapters

import (
	"context"
	"net/http"
	"time"

	"github.com/prebid/prebid-client/pbc"
)

// Adapters connect the client auction to a demand partner. Their primary
// purpose is to produce bid responses for the pending bid requests of a round.
type Adapter interface {
	// Name uniquely identifies this adapter. It cannot overlap with any other
	// adapter in the registry.
	Name() string
	// FamilyName identifies the ad network this adapter fronts.
	FamilyName() string
	// CallBids starts one auction round over params.Bids. It returns before
	// the round completes; responses reach the bid manager asynchronously.
	// An empty or absent bid list is a no-op.
	CallBids(ctx context.Context, params *pbc.CallBidsParams)
}

// HTTPAdapterConfig groups options which control how HTTP requests are made by adapters.
type HTTPAdapterConfig struct {
	// See IdleConnTimeout on https://golang.org/pkg/net/http/#Transport
	IdleConnTimeout time.Duration
	// See MaxIdleConns on https://golang.org/pkg/net/http/#Transport
	MaxConns int
	// See MaxIdleConnsPerHost on https://golang.org/pkg/net/http/#Transport
	MaxConnsPerHost int
}

type HTTPAdapter struct {
	Transport *http.Transport
	Client    *http.Client
}

// DefaultHTTPAdapterConfig is an HTTPAdapterConfig that chooses sensible default values.
var DefaultHTTPAdapterConfig = &HTTPAdapterConfig{
	MaxConns:        50,
	MaxConnsPerHost: 10,
	IdleConnTimeout: 60 * time.Second,
}

// NewHTTPAdapter creates an HTTPAdapter which obeys the rules given by the config.
func NewHTTPAdapter(c *HTTPAdapterConfig) *HTTPAdapter {
	ts := &http.Transport{
		MaxIdleConns:        c.MaxConns,
		MaxIdleConnsPerHost: c.MaxConnsPerHost,
		IdleConnTimeout:     c.IdleConnTimeout,
	}

	return &HTTPAdapter{
		Transport: ts,
		Client: &http.Client{
			Transport: ts,
		},
	}
}
