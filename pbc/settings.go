package pbc

// TargetingKey is one ad-server targeting extraction rule: Val pulls the
// value for Key out of a bid once the round settles.
type TargetingKey struct {
	Key string
	Val func(*Bid) string
}

// BidderSettings is the default-bidder-settings record an adapter registers
// at construction time. Registered once, read by the targeting step, never
// mutated afterward.
type BidderSettings struct {
	// AlwaysUseBid forwards this bidder's bid to the ad server even when it
	// loses the client-side comparison.
	AlwaysUseBid      bool
	AdserverTargeting []TargetingKey
}
