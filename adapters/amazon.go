package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/prebid/prebid-client/aax"
	"github.com/prebid/prebid-client/config"
	"github.com/prebid/prebid-client/errortypes"
	"github.com/prebid/prebid-client/loader"
	"github.com/prebid/prebid-client/metrics"
	"github.com/prebid/prebid-client/pbc"
)

const amazonBidderCode = "amazon"

// The real clearing price is obfuscated upstream; every filled amazon bid
// carries this placeholder CPM and is forwarded to the ad server regardless
// of client-side comparison (AlwaysUseBid below).
const amazonPlaceholderCPM = 0.10

type AmazonAdapter struct {
	loader     loader.ScriptLoader
	bidManager *pbc.BidManager
	metrics    *metrics.AdapterMetrics
	scriptURL  string
	debug      bool

	// round state, overwritten wholesale on each CallBids. The framework
	// serializes rounds; no guard against overlap here.
	bids            []*pbc.BidRequest
	fakeAdsForDebug bool
	done            chan struct{}
}

// amazon params on each bid request.
type amazonParams struct {
	AmazonID string `json:"amazonId"`
	Width    uint64 `json:"width"`
	Height   uint64 `json:"height"`
	Size     string `json:"size"`
}

func (a *AmazonAdapter) Name() string {
	return "amazon"
}

// used for cookies and such
func (a *AmazonAdapter) FamilyName() string {
	return "aax"
}

// EnableFakeAds turns on the debug-only fake ads override for the next round.
// It only survives CallBids when the framework debug config is set.
func (a *AmazonAdapter) EnableFakeAds() {
	a.fakeAdsForDebug = true
}

// Done reports completion of the current round's response pass. The framework
// owns the round timeout; a round whose ad lookup never completes leaves this
// channel open. Nil until the first round with bids starts.
func (a *AmazonAdapter) Done() <-chan struct{} {
	return a.done
}

func (a *AmazonAdapter) CallBids(ctx context.Context, params *pbc.CallBidsParams) {
	if params == nil || len(params.Bids) == 0 {
		return
	}
	a.bids = params.Bids
	if !a.debug {
		a.fakeAdsForDebug = false
	}
	a.metrics.RequestMeter.Mark(1)

	done := make(chan struct{})
	a.done = done
	go a.runRound(ctx, done)
}

// runRound is the whole round after CallBids returns: script load, parameter
// validation, one ad lookup, one response pass.
func (a *AmazonAdapter) runRound(ctx context.Context, done chan struct{}) {
	defer close(done)
	start := time.Now()

	client, err := a.loader.Load(ctx, a.scriptURL)
	if err != nil {
		glog.V(1).Infof("amazon: script load failed: %v", err)
		a.metrics.ErrorMeter.Mark(1)
		return
	}
	if client == nil && !a.fakeAdsForDebug {
		glog.V(1).Info("amazon: ad client unavailable after script load")
		a.metrics.ErrorMeter.Mark(1)
		return
	}

	parsed, ok := a.validateParams()
	if !ok {
		a.metrics.ErrorMeter.Mark(1)
		return
	}

	if !a.fakeAdsForDebug {
		// one lookup for the whole batch, keyed by the first bid's network
		// context (batches are single-network by caller contract)
		if err := client.FetchAds(ctx, parsed[0].AmazonID); err != nil {
			glog.V(1).Infof("amazon: ad lookup failed: %v", err)
		}
	}
	a.metrics.RequestTimer.UpdateSince(start)

	a.handleResponses(client, parsed)
}

// validateParams decodes and checks every bid's params. Any missing field
// logs a named error and invalidates the whole batch; all bids are still
// checked so every problem is reported at once.
func (a *AmazonAdapter) validateParams() ([]amazonParams, bool) {
	parsed := make([]amazonParams, len(a.bids))
	valid := true
	for i, bid := range a.bids {
		var params amazonParams
		if err := json.Unmarshal(bid.Params, &params); err != nil {
			glog.Errorf("amazon: unmarshal params '%s' failed: %v", bid.Params, err)
			valid = false
			continue
		}
		for _, check := range []struct {
			present bool
			name    string
		}{
			{params.AmazonID != "", "amazonId"},
			{params.Width != 0, "width"},
			{params.Height != 0, "height"},
			{params.Size != "", "size"},
		} {
			if !check.present {
				err := &errortypes.BadInput{
					Message: fmt.Sprintf("Missing %s param for placement %s", check.name, bid.PlacementCode),
				}
				glog.Error(err.Error())
				valid = false
			}
		}
		parsed[i] = params
	}

	if glog.V(2) {
		for i := 1; i < len(parsed); i++ {
			if parsed[i].AmazonID != "" && parsed[i].AmazonID != parsed[0].AmazonID {
				glog.Infof("amazon: placement %s has amazonId %s, batch uses %s",
					a.bids[i].PlacementCode, parsed[i].AmazonID, parsed[0].AmazonID)
			}
		}
	}
	return parsed, valid
}

// handleResponses maps the lookup results onto one response per bid request
// and hands each to the bid manager.
func (a *AmazonAdapter) handleResponses(client aax.Client, parsed []amazonParams) {
	for i, req := range a.bids {
		adSize := parsed[i].Size

		tokens := a.tokensFor(client, adSize)
		if len(tokens) == 0 {
			// expected no-fill outcome, not an error
			bid := pbc.NewBid(pbc.StatusNoBid)
			bid.BidderCode = amazonBidderCode
			a.bidManager.AddBidResponse(req.PlacementCode, bid)
			continue
		}

		key := tokens[0]
		bid := pbc.NewBid(pbc.StatusBid)
		bid.BidderCode = amazonBidderCode
		bid.CPM = amazonPlaceholderCPM
		bid.Adm = a.adFor(client, key)
		bid.Width = parsed[i].Width
		bid.Height = parsed[i].Height
		bid.AmazonKey = key
		a.bidManager.AddBidResponse(req.PlacementCode, bid)
	}
}

func (a *AmazonAdapter) tokensFor(client aax.Client, adSize string) []string {
	if a.fakeAdsForDebug {
		return []string{"a" + adSize + "p1"}
	}
	if client == nil || !client.HasAds(adSize) {
		return nil
	}
	return client.Tokens(adSize)
}

func (a *AmazonAdapter) adFor(client aax.Client, key string) string {
	if a.fakeAdsForDebug {
		return ""
	}
	adm, _ := client.Ad(key)
	return adm
}

// NewAmazonAdapter builds the adapter and registers its default bidder
// settings with the bid manager: the bid is always forwarded to the ad
// server, carrying the aax token under amznkey and the framework bid ID
// under amznbid.
func NewAmazonAdapter(ldr loader.ScriptLoader, bidManager *pbc.BidManager, m *metrics.Metrics, scriptURL string, debug bool) *AmazonAdapter {
	a := &AmazonAdapter{
		loader:     ldr,
		bidManager: bidManager,
		metrics:    m.ForAdapter(amazonBidderCode),
		scriptURL:  scriptURL,
		debug:      debug,
	}

	bidManager.RegisterDefaultBidderSetting(amazonBidderCode, &pbc.BidderSettings{
		AlwaysUseBid: true,
		AdserverTargeting: []pbc.TargetingKey{
			{
				Key: "amznkey",
				Val: func(bid *pbc.Bid) string { return bid.AmazonKey },
			},
			{
				Key: "amznbid",
				Val: func(bid *pbc.Bid) string { return bid.BidID },
			},
		},
	})

	return a
}

// NewAmazonAdapterFromConfig wires the adapter the way a deploy does: the
// shared HTTP transport, a caching script loader bound to the configured aax
// bid endpoint, and the configured script URL.
func NewAmazonAdapterFromConfig(httpConfig *HTTPAdapterConfig, adapterConfig config.Adapter, bidManager *pbc.BidManager, m *metrics.Metrics, debug bool) *AmazonAdapter {
	httpAdapter := NewHTTPAdapter(httpConfig)
	ldr := loader.NewHTTPScriptLoader(httpAdapter.Client, adapterConfig.Endpoint)
	return NewAmazonAdapter(ldr, bidManager, m, adapterConfig.ScriptURL, debug)
}
