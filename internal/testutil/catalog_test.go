package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/compras/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestCatalog(t *testing.T) {
	cat := SetupTestCatalog(t, ShoppingTrip()...)

	items, err := cat.Client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Takoyaki", items[0].ItemName, "newest first")

	cat.MustToggle(items[0].ID)
	assert.True(t, cat.MustGet(items[0].ID).Purchased)

	require.NoError(t, cat.Client.Delete(context.Background(), items[1].ID))
	assert.False(t, cat.Exists(items[1].ID))
	assert.Len(t, cat.Items(), 2)
}

func TestItemBuilder(t *testing.T) {
	item := NewItem("Pocky").
		AtStore("Lawson").
		InCategory(model.CategoryFood).
		InCity(string(model.CityOsaka)).
		InRegion("Namba").
		For("Bruno").
		PricedYen(1000).
		Build()

	assert.Empty(t, item.MissingFields())
	assert.Equal(t, "Lawson", item.StoreName)
	assert.InDelta(t, 1000.0, item.PriceYen, 0.001)
	assert.InDelta(t, 34.0, item.PriceReal, 0.001)
	assert.InDelta(t, 6.54, item.PriceDollar, 0.001)

	assert.Zero(t, NewItem("Pocky").Build().PriceReal)
}
