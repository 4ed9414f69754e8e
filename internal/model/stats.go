package model

// Stats aggregates a collection of items.
type Stats struct {
	TotalItems      int
	PurchasedCount  int
	PendingCount    int
	TotalReal       float64
	TotalYen        float64
	TotalDollar     float64
	PurchasedReal   float64
	PurchasedYen    float64
	PurchasedDollar float64
}

// Empty reports whether there is nothing to show.
func (s Stats) Empty() bool {
	return s.TotalItems == 0
}

// PurchasedRatio returns the fraction of items already bought.
func (s Stats) PurchasedRatio() float64 {
	if s.TotalItems == 0 {
		return 0
	}
	return float64(s.PurchasedCount) / float64(s.TotalItems)
}

// RemoteStats is the payload of the catalog's stats endpoint.
type RemoteStats struct {
	TotalItems       int     `json:"totalItems"`
	PurchasedItems   int     `json:"purchasedItems"`
	PendingItems     int     `json:"pendingItems"`
	TotalPriceReal   float64 `json:"totalPriceReal"`
	TotalPriceYen    float64 `json:"totalPriceYen"`
	TotalPriceDollar float64 `json:"totalPriceDollar"`
}
