// Package model defines the shopping item types shared by every layer.
package model

import (
	"strings"
	"time"
)

// ShoppingItem is a single thing to buy, as stored by the remote catalog.
type ShoppingItem struct {
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	ItemName    string     `json:"itemName"`
	Image       string     `json:"image"`
	StoreName   string     `json:"storeName"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	Region      string     `json:"region"`
	ForWhom     string     `json:"forWhom"`
	PriceReal   float64    `json:"priceReal"`
	PriceYen    float64    `json:"priceYen"`
	PriceDollar float64    `json:"priceDollar"`
	ID          int        `json:"id"`
	Purchased   bool       `json:"purchased"`
}

// CreateItem is the body sent to create an item. The catalog assigns
// id, purchased and timestamps.
type CreateItem struct {
	ItemName    string  `json:"itemName"`
	Image       string  `json:"image"`
	StoreName   string  `json:"storeName"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	ForWhom     string  `json:"forWhom"`
	PriceReal   float64 `json:"priceReal"`
	PriceYen    float64 `json:"priceYen"`
	PriceDollar float64 `json:"priceDollar"`
}

// UpdateItem is the body sent to replace an item's editable fields.
type UpdateItem struct {
	CreateItem
	Purchased bool `json:"purchased"`
}

// ImageKind classifies the image field.
type ImageKind int

// Image kinds.
const (
	ImageNone ImageKind = iota
	ImageURL
	ImageEmbedded
)

// ImageKind reports whether the item has no image, a URL or an embedded payload.
func (i ShoppingItem) ImageKind() ImageKind {
	switch {
	case i.Image == "":
		return ImageNone
	case strings.HasPrefix(i.Image, "data:"):
		return ImageEmbedded
	default:
		return ImageURL
	}
}

// Fields returns the editable fields of the item as a CreateItem.
func (i ShoppingItem) Fields() CreateItem {
	return CreateItem{
		ItemName:    i.ItemName,
		Image:       i.Image,
		StoreName:   i.StoreName,
		Category:    i.Category,
		City:        i.City,
		Region:      i.Region,
		ForWhom:     i.ForWhom,
		PriceReal:   i.PriceReal,
		PriceYen:    i.PriceYen,
		PriceDollar: i.PriceDollar,
	}
}

// Apply merges an update into the item and stamps UpdatedAt.
func (i ShoppingItem) Apply(u UpdateItem, at time.Time) ShoppingItem {
	i.ItemName = u.ItemName
	i.Image = u.Image
	i.StoreName = u.StoreName
	i.Category = u.Category
	i.City = u.City
	i.Region = u.Region
	i.ForWhom = u.ForWhom
	i.PriceReal = u.PriceReal
	i.PriceYen = u.PriceYen
	i.PriceDollar = u.PriceDollar
	i.Purchased = u.Purchased
	i.UpdatedAt = &at
	return i
}

// MissingFields returns the names of required text fields that are blank
// after trimming, in form order.
func (c CreateItem) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"itemName", c.ItemName},
		{"storeName", c.StoreName},
		{"category", c.Category},
		{"city", c.City},
		{"region", c.Region},
		{"forWhom", c.ForWhom},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// NewItem builds a fresh, not yet purchased item from create fields.
func NewItem(id int, c CreateItem, createdAt time.Time) ShoppingItem {
	return ShoppingItem{
		ID:          id,
		ItemName:    c.ItemName,
		Image:       c.Image,
		StoreName:   c.StoreName,
		Category:    c.Category,
		City:        c.City,
		Region:      c.Region,
		ForWhom:     c.ForWhom,
		PriceReal:   c.PriceReal,
		PriceYen:    c.PriceYen,
		PriceDollar: c.PriceDollar,
		CreatedAt:   createdAt,
	}
}
