// Package aax wraps the Amazon ad-lookup service (the "amznads" script in
// browser terms). The Client interface is what adapters consume; the HTTP
// implementation talks to the aax bid endpoint directly.
package aax

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/net/context/ctxhttp"
)

// Client is the ad-lookup contract. FetchAds blocks until the lookup for
// networkID completes; results are then readable through the accessors.
// One fetch per auction round — a new fetch replaces the results wholesale.
type Client interface {
	FetchAds(ctx context.Context, networkID string) error
	// HasAds reports whether the last fetch returned at least one token for
	// the given size bucket (e.g. "3x2").
	HasAds(size string) bool
	// Tokens returns the ordered token list for a size bucket.
	Tokens(size string) []string
	// Ad returns the creative markup bought under a token.
	Ad(token string) (string, bool)
}

// adsPayload is the aax bid endpoint's response body.
type adsPayload struct {
	// Tokens maps a size bucket to the ordered tokens available for it.
	Tokens map[string][]string `json:"tokens"`
	// Ads maps a token to its creative markup.
	Ads map[string]string `json:"ads"`
}

// HTTPClient implements Client against the aax bid endpoint.
type HTTPClient struct {
	http     *http.Client
	Endpoint string

	mu      sync.RWMutex
	payload adsPayload
}

func NewHTTPClient(client *http.Client, endpoint string) *HTTPClient {
	return &HTTPClient{
		http:     client,
		Endpoint: endpoint,
	}
}

func (c *HTTPClient) FetchAds(ctx context.Context, networkID string) error {
	httpReq, err := http.NewRequest("GET", fmt.Sprintf("%s?src=%s", c.Endpoint, url.QueryEscape(networkID)), nil)
	if err != nil {
		return err
	}
	httpReq.Header.Add("Accept", "application/json")

	resp, err := ctxhttp.Do(ctx, c.http, httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 204 {
		c.store(adsPayload{})
		return nil
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("HTTP status: %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var payload adsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}
	c.store(payload)
	return nil
}

func (c *HTTPClient) store(payload adsPayload) {
	c.mu.Lock()
	c.payload = payload
	c.mu.Unlock()
}

func (c *HTTPClient) HasAds(size string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.payload.Tokens[size]) > 0
}

func (c *HTTPClient) Tokens(size string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tokens := make([]string, len(c.payload.Tokens[size]))
	copy(tokens, c.payload.Tokens[size])
	return tokens
}

func (c *HTTPClient) Ad(token string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	adm, ok := c.payload.Ads[token]
	return adm, ok
}
