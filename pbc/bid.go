package pbc

import (
	"github.com/gofrs/uuid"
)

// BidStatus distinguishes a filled bid from a no-fill answer. The codes match
// the ones Prebid.js adapters report through their bid factory.
type BidStatus int

const (
	// StatusBid marks a bid which carries a creative.
	StatusBid BidStatus = 1
	// StatusNoBid marks an expected no-fill answer. Not an error.
	StatusNoBid BidStatus = 2
)

// Bid is one adapter's answer for one placement. Ownership passes to the
// BidManager as soon as AddBidResponse is called; adapters must not hold a
// reference afterward.
type Bid struct {
	BidID         string    `json:"bid_id"`
	PlacementCode string    `json:"code"`
	BidderCode    string    `json:"bidder"`
	Status        BidStatus `json:"status"`
	CPM           float64   `json:"price"`
	Adm           string    `json:"adm,omitempty"`
	Width         uint64    `json:"width,omitempty"`
	Height        uint64    `json:"height,omitempty"`
	// AmazonKey is the aax token the creative was bought under. Consumed by
	// the targeting extraction rules, opaque to everything else.
	AmazonKey    string `json:"amazon_key,omitempty"`
	ResponseTime int    `json:"response_time_ms,omitempty"`
}

// NewBid is the bid factory. It assigns the framework-internal bid ID; all
// other fields are filled in by the adapter.
func NewBid(status BidStatus) *Bid {
	id, _ := uuid.NewV4()
	return &Bid{
		BidID:  id.String(),
		Status: status,
	}
}

type BidSlice []*Bid

func (bids BidSlice) Len() int {
	return len(bids)
}

func (bids BidSlice) Less(i, j int) bool {
	bidA := bids[i]
	bidB := bids[j]
	if bidA.CPM == bidB.CPM {
		// ties broken by response time so a faster bidder wins
		return bidA.ResponseTime < bidB.ResponseTime
	}
	return bidA.CPM > bidB.CPM
}

func (bids BidSlice) Swap(i, j int) {
	bids[i], bids[j] = bids[j], bids[i]
}
