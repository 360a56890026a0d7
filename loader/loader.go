// Package loader fetches a bidder's client script and hands back the ad
// client it bootstraps. Script bodies are cached so repeated auction rounds
// on one page don't refetch the same script.
package loader

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/coocood/freecache"
	"github.com/golang/glog"
	"golang.org/x/net/context/ctxhttp"

	"github.com/prebid/prebid-client/aax"
)

// ScriptLoader loads a client script and returns the ad client behind it.
// A nil client with a nil error means the script loaded but the client
// handle is unavailable; adapters must treat that as a dead round.
type ScriptLoader interface {
	Load(ctx context.Context, scriptURL string) (aax.Client, error)
}

const (
	scriptCacheSize = 512 * 1024
	scriptCacheTTL  = 3600 // seconds
)

// HTTPScriptLoader fetches scripts over HTTP and binds an aax HTTP client to
// the configured bid endpoint once the script is confirmed retrievable.
type HTTPScriptLoader struct {
	http        *http.Client
	bidEndpoint string
	cache       *freecache.Cache
}

func NewHTTPScriptLoader(client *http.Client, bidEndpoint string) *HTTPScriptLoader {
	return &HTTPScriptLoader{
		http:        client,
		bidEndpoint: bidEndpoint,
		cache:       freecache.NewCache(scriptCacheSize),
	}
}

func (l *HTTPScriptLoader) Load(ctx context.Context, scriptURL string) (aax.Client, error) {
	key := []byte(scriptURL)
	if _, err := l.cache.Get(key); err != nil {
		body, err := l.fetch(ctx, scriptURL)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(key, body, scriptCacheTTL); err != nil {
			// too large for the cache slot; next round refetches
			glog.V(2).Infof("script %s not cached: %v", scriptURL, err)
		}
	}
	return aax.NewHTTPClient(l.http, l.bidEndpoint), nil
}

func (l *HTTPScriptLoader) fetch(ctx context.Context, scriptURL string) ([]byte, error) {
	httpReq, err := http.NewRequest("GET", scriptURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := ctxhttp.Do(ctx, l.http, httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP status: %d", resp.StatusCode)
	}
	return ioutil.ReadAll(resp.Body)
}
