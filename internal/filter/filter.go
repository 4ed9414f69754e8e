// Package filter derives what the list views show from the full item
// collection. Every function here is pure and keeps input order.
package filter

import (
	"strings"

	"github.com/Veraticus/compras/internal/model"
)

// Criteria narrows the visible items. An empty field places no constraint.
type Criteria struct {
	Category string
	City     string
	Region   string
	ForWhom  string
}

// Active reports whether any criterion is set.
func (c Criteria) Active() bool {
	return c.Category != "" || c.City != "" || c.Region != "" || c.ForWhom != ""
}

// Matches reports whether a single item satisfies every set criterion.
// Category and city must match exactly; region and recipient match as a
// case-insensitive substring.
func (c Criteria) Matches(item model.ShoppingItem) bool {
	if c.Category != "" && item.Category != c.Category {
		return false
	}
	if c.City != "" && item.City != c.City {
		return false
	}
	if c.Region != "" && !containsFold(item.Region, c.Region) {
		return false
	}
	if c.ForWhom != "" && !containsFold(item.ForWhom, c.ForWhom) {
		return false
	}
	return true
}

// View is the filtered collection split for the three tabs.
type View struct {
	All       []model.ShoppingItem
	Pending   []model.ShoppingItem
	Purchased []model.ShoppingItem
}

// Apply returns the items matching criteria, in input order.
func Apply(items []model.ShoppingItem, criteria Criteria) []model.ShoppingItem {
	if !criteria.Active() {
		out := make([]model.ShoppingItem, len(items))
		copy(out, items)
		return out
	}

	out := make([]model.ShoppingItem, 0, len(items))
	for _, item := range items {
		if criteria.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Partition splits an already filtered collection into pending and
// purchased items. All is the input itself.
func Partition(filtered []model.ShoppingItem) View {
	v := View{
		All:       filtered,
		Pending:   make([]model.ShoppingItem, 0, len(filtered)),
		Purchased: make([]model.ShoppingItem, 0, len(filtered)),
	}
	for _, item := range filtered {
		if item.Purchased {
			v.Purchased = append(v.Purchased, item)
		} else {
			v.Pending = append(v.Pending, item)
		}
	}
	return v
}

// Derive filters and partitions in one step.
func Derive(items []model.ShoppingItem, criteria Criteria) View {
	return Partition(Apply(items, criteria))
}

// Aggregate totals a collection. The list view passes the unfiltered
// collection; callers hide the stats panel when the result is empty.
func Aggregate(items []model.ShoppingItem) model.Stats {
	var s model.Stats
	for _, item := range items {
		s.TotalItems++
		s.TotalReal += item.PriceReal
		s.TotalYen += item.PriceYen
		s.TotalDollar += item.PriceDollar
		if item.Purchased {
			s.PurchasedCount++
			s.PurchasedReal += item.PriceReal
			s.PurchasedYen += item.PriceYen
			s.PurchasedDollar += item.PriceDollar
		}
	}
	s.PendingCount = s.TotalItems - s.PurchasedCount
	return s
}

// Cities returns the distinct non-empty cities in first-seen order.
func Cities(items []model.ShoppingItem) []string {
	return distinct(items, func(i model.ShoppingItem) string { return i.City })
}

// Regions returns the distinct non-empty regions in first-seen order.
func Regions(items []model.ShoppingItem) []string {
	return distinct(items, func(i model.ShoppingItem) string { return i.Region })
}

func distinct(items []model.ShoppingItem, field func(model.ShoppingItem) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		v := field(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
