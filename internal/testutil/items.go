package testutil

import (
	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/model"
)

// ItemBuilder builds valid create requests with readable defaults.
type ItemBuilder struct {
	item model.CreateItem
}

// NewItem starts an item named name, bought at Don Quijote in Shibuya,
// Tokyo, for Ana, with no price.
func NewItem(name string) *ItemBuilder {
	return &ItemBuilder{item: model.CreateItem{
		ItemName:  name,
		StoreName: "Don Quijote",
		Category:  string(model.CategoryFood),
		City:      string(model.CityTokyo),
		Region:    "Shibuya",
		ForWhom:   "Ana",
	}}
}

// AtStore sets the store.
func (b *ItemBuilder) AtStore(store string) *ItemBuilder {
	b.item.StoreName = store
	return b
}

// InCategory sets the category.
func (b *ItemBuilder) InCategory(category model.Category) *ItemBuilder {
	b.item.Category = string(category)
	return b
}

// InCity sets the city.
func (b *ItemBuilder) InCity(city string) *ItemBuilder {
	b.item.City = city
	return b
}

// InRegion sets the region.
func (b *ItemBuilder) InRegion(region string) *ItemBuilder {
	b.item.Region = region
	return b
}

// For sets the recipient.
func (b *ItemBuilder) For(who string) *ItemBuilder {
	b.item.ForWhom = who
	return b
}

// WithImage sets the image URL or data URL.
func (b *ItemBuilder) WithImage(image string) *ItemBuilder {
	b.item.Image = image
	return b
}

// PricedYen sets all three prices from a Yen amount, as the form would.
func (b *ItemBuilder) PricedYen(yen float64) *ItemBuilder {
	p := currency.FromYen(currency.PriceText(yen))
	b.item.PriceYen = yen
	b.item.PriceReal = currency.ParseOrZero(p.Real)
	b.item.PriceDollar = currency.ParseOrZero(p.Dollar)
	return b
}

// Build returns the request.
func (b *ItemBuilder) Build() model.CreateItem {
	return b.item
}

// ShoppingTrip is a small mixed list: two Tokyo items and one Osaka item.
func ShoppingTrip() []model.CreateItem {
	return []model.CreateItem{
		NewItem("Kit Kat Matcha").InRegion("Shibuya-ku").PricedYen(1000).Build(),
		NewItem("Câmera instantânea").InCategory(model.CategoryElectronics).AtStore("Yodobashi").
			InRegion("Akihabara").For("Bruno").PricedYen(12000).Build(),
		NewItem("Takoyaki").InCity(string(model.CityOsaka)).InRegion("Namba").PricedYen(500).Build(),
	}
}
