package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRequired(f *Form) {
	f.SetItemName("Protetor solar")
	f.SetStoreName("Matsumoto Kiyoshi")
	f.SetCategory("Cosméticos")
	f.SetCity("Tóquio")
	f.SetRegion("Shibuya")
	f.SetForWhom("Ana")
}

func TestSubmit_CreateWithBlankPrices(t *testing.T) {
	f := New()
	fillRequired(f)

	intent, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, IntentCreate, intent.Kind)
	assert.Zero(t, intent.ID)
	assert.Equal(t, "Protetor solar", intent.Create.ItemName)
	assert.Zero(t, intent.Create.PriceReal)
	assert.Zero(t, intent.Create.PriceYen)
	assert.Zero(t, intent.Create.PriceDollar)

	assert.Equal(t, Fields{}, f.Fields(), "create form resets after submit")
}

func TestSubmit_ValidationBlocks(t *testing.T) {
	f := New()
	fillRequired(f)
	f.SetRegion("   ")
	f.SetForWhom("")

	intent, ok := f.Submit()
	assert.False(t, ok)
	assert.Equal(t, Intent{}, intent)
	assert.Equal(t, "Protetor solar", f.Fields().ItemName, "a blocked submit keeps the form")

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"region", "forWhom"}, vErr.Missing)
	assert.Equal(t, []string{"region", "forWhom"}, f.Missing())
}

func TestSubmit_StringsNotTrimmed(t *testing.T) {
	f := New()
	fillRequired(f)
	f.SetItemName("  Gundam  ")

	intent, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, "  Gundam  ", intent.Create.ItemName)
}

func TestSubmit_InvalidPriceSentAsZero(t *testing.T) {
	f := New()
	fillRequired(f)
	f.SetReal("12abc")

	fields := f.Fields()
	assert.Equal(t, "12abc", fields.PriceReal)
	assert.Empty(t, fields.PriceYen)
	assert.Empty(t, fields.PriceDollar)

	intent, ok := f.Submit()
	require.True(t, ok)
	assert.Zero(t, intent.Create.PriceReal)
}

func TestPriceSync(t *testing.T) {
	f := New()

	f.SetReal("100")
	assert.Equal(t, Fields{PriceReal: "100", PriceYen: "2941", PriceDollar: "19.23"}, f.Fields())

	f.SetYen("1000")
	assert.Equal(t, Fields{PriceReal: "34.00", PriceYen: "1000", PriceDollar: "6.54"}, f.Fields())

	f.SetDollar("10")
	assert.Equal(t, Fields{PriceReal: "52.00", PriceYen: "1529", PriceDollar: "10"}, f.Fields())

	f.SetDollar("")
	assert.Equal(t, Fields{}, f.Fields())

	fillRequired(f)
	f.SetYen("1000")
	intent, ok := f.Submit()
	require.True(t, ok)
	assert.InDelta(t, 34.0, intent.Create.PriceReal, 1e-9)
	assert.InDelta(t, 1000.0, intent.Create.PriceYen, 1e-9)
	assert.InDelta(t, 6.54, intent.Create.PriceDollar, 1e-9)
}

func TestForItem(t *testing.T) {
	item := model.ShoppingItem{
		ID:          7,
		ItemName:    "Gundam",
		StoreName:   "Yodobashi",
		Category:    "Coisas Geek",
		City:        "Tóquio",
		Region:      "Akihabara",
		ForWhom:     "Pedro",
		PriceReal:   200,
		PriceYen:    5882,
		PriceDollar: 0,
		Purchased:   true,
		CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	f := ForItem(item)
	assert.True(t, f.Editing())
	assert.Equal(t, 7, f.ItemID())

	fields := f.Fields()
	assert.Equal(t, "Gundam", fields.ItemName)
	assert.Equal(t, "200", fields.PriceReal)
	assert.Equal(t, "5882", fields.PriceYen)
	assert.Empty(t, fields.PriceDollar, "zero price shows as empty")

	f.SetItemName("Gundam RX-78")
	intent, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, IntentUpdate, intent.Kind)
	assert.Equal(t, 7, intent.ID)
	assert.Equal(t, "Gundam RX-78", intent.Update.ItemName)
	assert.True(t, intent.Update.Purchased, "update keeps the purchased flag")
	assert.Zero(t, intent.Update.PriceDollar)
	assert.True(t, f.Submitted())
	assert.Equal(t, "Gundam RX-78", f.Fields().ItemName, "edit form keeps its content")

	f.Reset()
	assert.Equal(t, "Gundam", f.Fields().ItemName)
}

func TestImageMethod(t *testing.T) {
	f := New()
	f.SetImage("https://example.com/a.jpg")

	f.SetImageMethod(ImageFromURL)
	assert.Equal(t, "https://example.com/a.jpg", f.Fields().Image, "same method keeps the image")

	f.SetImageMethod(ImageFromCamera)
	assert.Empty(t, f.Fields().Image)
	assert.Equal(t, "camera", f.ImageMethod().String())

	embedded := ForItem(model.ShoppingItem{Image: "data:image/jpeg;base64,AAAA"})
	assert.Equal(t, ImageFromGallery, embedded.ImageMethod())

	m, err := ParseImageMethod("Galeria")
	require.NoError(t, err)
	assert.Equal(t, ImageFromGallery, m)
	_, err = ParseImageMethod("scanner")
	assert.Error(t, err)
}

func TestCaptureImage(t *testing.T) {
	f := New()
	f.SetImage("https://example.com/old.jpg")

	err := f.CaptureImage(context.Background(), media.CapturerFunc(func(context.Context) (string, error) {
		return "", errors.New("permission denied")
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrCapture)
	assert.Equal(t, "https://example.com/old.jpg", f.Fields().Image)

	err = f.CaptureImage(context.Background(), media.CapturerFunc(func(context.Context) (string, error) {
		return "data:image/jpeg;base64,AAAA", nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", f.Fields().Image)

	f.ClearImage()
	assert.Empty(t, f.Fields().Image)
}
