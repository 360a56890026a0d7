package pbc

import (
	"sync"

	"github.com/golang/glog"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/prebid/prebid-client/metrics"
)

// BidManager collects the bid responses of one page's auction rounds and the
// default settings of every constructed adapter. Safe for use from adapter
// round goroutines.
type BidManager struct {
	metrics *metrics.Metrics

	mu       sync.Mutex
	settings map[string]*BidderSettings
	bids     map[string]BidSlice
}

// NewBidManager creates a bid manager reporting into m. A nil m gets a
// private throwaway registry so callers without metrics still work.
func NewBidManager(m *metrics.Metrics) *BidManager {
	if m == nil {
		m = metrics.NewMetrics(gometrics.NewRegistry(), nil)
	}
	return &BidManager{
		metrics:  m,
		settings: make(map[string]*BidderSettings),
		bids:     make(map[string]BidSlice),
	}
}

// RegisterDefaultBidderSetting stores the settings record for a bidder. The
// first registration wins; adapters register exactly once at construction,
// so a second call is a wiring bug and is logged and ignored.
func (bm *BidManager) RegisterDefaultBidderSetting(bidderCode string, settings *BidderSettings) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if _, ok := bm.settings[bidderCode]; ok {
		glog.Warningf("Default bidder settings for %s registered twice; keeping the first", bidderCode)
		return
	}
	bm.settings[bidderCode] = settings
}

// AddBidResponse records a bid for a placement. The bid manager owns the bid
// from here on; it stamps the placement code so adapters don't have to.
func (bm *BidManager) AddBidResponse(placementCode string, bid *Bid) {
	bid.PlacementCode = placementCode

	bm.mu.Lock()
	bm.bids[placementCode] = append(bm.bids[placementCode], bid)
	bm.mu.Unlock()

	am := bm.metrics.ForAdapter(bid.BidderCode)
	if bid.Status == StatusNoBid {
		am.NoBidMeter.Mark(1)
		return
	}
	am.BidsReceivedMeter.Mark(1)
	am.PriceHistogram.Update(int64(bid.CPM * 1000))
}

// BidsFor returns the responses registered so far for a placement.
func (bm *BidManager) BidsFor(placementCode string) BidSlice {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	bids := make(BidSlice, len(bm.bids[placementCode]))
	copy(bids, bm.bids[placementCode])
	return bids
}

// SettingsFor returns the registered default settings for a bidder, or nil.
func (bm *BidManager) SettingsFor(bidderCode string) *BidderSettings {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.settings[bidderCode]
}

// TargetingFor assembles the ad-server targeting pairs for a placement by
// running each always-use bidder's extraction rules over its bids. Ranking
// and serialization stay with the ad-server layer.
func (bm *BidManager) TargetingFor(placementCode string) map[string]string {
	targeting := make(map[string]string)
	for _, bid := range bm.BidsFor(placementCode) {
		settings := bm.SettingsFor(bid.BidderCode)
		if settings == nil || !settings.AlwaysUseBid {
			continue
		}
		for _, rule := range settings.AdserverTargeting {
			if val := rule.Val(bid); val != "" {
				targeting[rule.Key] = val
			}
		}
	}
	return targeting
}
