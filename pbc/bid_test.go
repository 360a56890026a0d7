package pbc

import (
	"sort"
	"testing"
)

func TestSortBids(t *testing.T) {
	bid1 := Bid{
		BidID:         "testBidId",
		PlacementCode: "testPlacement",
		BidderCode:    "testBidderCode",
		CPM:           0.0,
	}
	bid2 := Bid{
		BidID:         "testBidId",
		PlacementCode: "testPlacement",
		BidderCode:    "testBidderCode",
		CPM:           4.0,
	}
	bid3 := Bid{
		BidID:         "testBidId",
		PlacementCode: "testPlacement",
		BidderCode:    "testBidderCode",
		CPM:           2.0,
	}
	bid4 := Bid{
		BidID:         "testBidId",
		PlacementCode: "testPlacement",
		BidderCode:    "testBidderCode",
		CPM:           0.50,
	}

	bids := make(BidSlice, 0)
	bids = append(bids, &bid1, &bid2, &bid3, &bid4)

	sort.Sort(bids)
	if bids[0].CPM != 4.0 {
		t.Error("Expected 4.00 to be highest price")
	}
	if bids[1].CPM != 2.0 {
		t.Error("Expected 2.00 to be second highest price")
	}
	if bids[2].CPM != 0.5 {
		t.Error("Expected 0.50 to be third highest price")
	}
	if bids[3].CPM != 0.0 {
		t.Error("Expected 0.00 to be lowest price")
	}
}

func TestSortBidsWithResponseTimes(t *testing.T) {
	bid1 := Bid{
		BidID:        "testBidId",
		BidderCode:   "testBidderCode",
		CPM:          1.0,
		ResponseTime: 70,
	}
	bid2 := Bid{
		BidID:        "testBidId",
		BidderCode:   "testBidderCode",
		CPM:          1.0,
		ResponseTime: 20,
	}
	bid3 := Bid{
		BidID:        "testBidId",
		BidderCode:   "testBidderCode",
		CPM:          1.0,
		ResponseTime: 99,
	}

	bids := make(BidSlice, 0)
	bids = append(bids, &bid1, &bid2, &bid3)

	sort.Sort(bids)
	if bids[0] != &bid2 {
		t.Error("Expected bid 2 to win")
	}
	if bids[2] != &bid3 {
		t.Error("Expected bid 3 to be last")
	}
}

func TestNewBid(t *testing.T) {
	bid := NewBid(StatusNoBid)
	if bid.Status != StatusNoBid {
		t.Errorf("Expected status %d, got %d", StatusNoBid, bid.Status)
	}
	if bid.BidID == "" {
		t.Error("Expected factory to assign a bid ID")
	}
	other := NewBid(StatusBid)
	if other.BidID == bid.BidID {
		t.Error("Expected unique bid IDs")
	}
}
