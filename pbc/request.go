package pbc

import (
	"encoding/json"
)

// BidRequest is one ad slot entered into the auction round for a bidder.
// Params carries the bidder-specific options; each adapter unmarshals them
// into its own params struct. Read-only to adapters.
type BidRequest struct {
	PlacementCode string          `json:"placementCode"`
	Params        json.RawMessage `json:"params"`
}

// CallBidsParams is the argument to Adapter.CallBids: the ordered bid
// requests for one auction round. May be empty or nil, in which case the
// adapter must return without side effects.
type CallBidsParams struct {
	Bids []*BidRequest `json:"bids"`
}
