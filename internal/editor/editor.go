// Package editor holds the state of the add/edit item form. It validates
// input and produces the request to send, but never talks to the catalog.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/model"
)

// ErrValidation is returned when required fields are blank.
var ErrValidation = errors.New("required fields missing")

// ValidationError lists the blank required fields.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ImageMethod is how the user supplies the photo.
type ImageMethod int

// Image methods.
const (
	ImageFromURL ImageMethod = iota
	ImageFromGallery
	ImageFromCamera
)

func (m ImageMethod) String() string {
	switch m {
	case ImageFromGallery:
		return "gallery"
	case ImageFromCamera:
		return "camera"
	default:
		return "url"
	}
}

// ParseImageMethod maps "url", "gallery" or "camera" to an ImageMethod.
func ParseImageMethod(s string) (ImageMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "url":
		return ImageFromURL, nil
	case "gallery", "galeria", "file":
		return ImageFromGallery, nil
	case "camera", "câmera":
		return ImageFromCamera, nil
	default:
		return ImageFromURL, fmt.Errorf("unknown image method %q", s)
	}
}

// IntentKind says which remote operation a submit asks for.
type IntentKind int

// Intent kinds.
const (
	IntentCreate IntentKind = iota
	IntentUpdate
)

// Intent is what a successful submit asks the list controller to do.
type Intent struct {
	Create model.CreateItem
	Update model.UpdateItem
	Kind   IntentKind
	ID     int
}

// Fields is the raw text of every form field.
type Fields struct {
	ItemName    string
	Image       string
	StoreName   string
	Category    string
	City        string
	Region      string
	ForWhom     string
	PriceReal   string
	PriceYen    string
	PriceDollar string
}

// Form is one open add or edit form.
type Form struct {
	fields    Fields
	original  *model.ShoppingItem
	method    ImageMethod
	submitted bool
}

// New returns an empty create form.
func New() *Form {
	return &Form{}
}

// ForItem returns an edit form seeded with item. Zero prices show as
// empty fields.
func ForItem(item model.ShoppingItem) *Form {
	seed := item
	f := &Form{
		original: &seed,
		fields: Fields{
			ItemName:    item.ItemName,
			Image:       item.Image,
			StoreName:   item.StoreName,
			Category:    item.Category,
			City:        item.City,
			Region:      item.Region,
			ForWhom:     item.ForWhom,
			PriceReal:   currency.PriceText(item.PriceReal),
			PriceYen:    currency.PriceText(item.PriceYen),
			PriceDollar: currency.PriceText(item.PriceDollar),
		},
	}
	if item.ImageKind() == model.ImageEmbedded {
		f.method = ImageFromGallery
	}
	return f
}

// Editing reports whether this is an edit form.
func (f *Form) Editing() bool {
	return f.original != nil
}

// ItemID returns the id of the item being edited, or 0.
func (f *Form) ItemID() int {
	if f.original == nil {
		return 0
	}
	return f.original.ID
}

// Fields returns a copy of the current field text.
func (f *Form) Fields() Fields {
	return f.fields
}

// ImageMethod returns the selected image method.
func (f *Form) ImageMethod() ImageMethod {
	return f.method
}

// SetItemName sets the item name.
func (f *Form) SetItemName(s string) { f.fields.ItemName = s }

// SetStoreName sets the store name.
func (f *Form) SetStoreName(s string) { f.fields.StoreName = s }

// SetCategory sets the category.
func (f *Form) SetCategory(s string) { f.fields.Category = s }

// SetCity sets the city.
func (f *Form) SetCity(s string) { f.fields.City = s }

// SetRegion sets the region.
func (f *Form) SetRegion(s string) { f.fields.Region = s }

// SetForWhom sets the recipient.
func (f *Form) SetForWhom(s string) { f.fields.ForWhom = s }

// SetReal stores the typed Real text and recomputes Yen and Dollar.
func (f *Form) SetReal(s string) { f.setPrices(currency.FromReal(s)) }

// SetYen stores the typed Yen text and recomputes Real and Dollar.
func (f *Form) SetYen(s string) { f.setPrices(currency.FromYen(s)) }

// SetDollar stores the typed Dollar text and recomputes Real and Yen.
func (f *Form) SetDollar(s string) { f.setPrices(currency.FromDollar(s)) }

func (f *Form) setPrices(p currency.Prices) {
	f.fields.PriceReal = p.Real
	f.fields.PriceYen = p.Yen
	f.fields.PriceDollar = p.Dollar
}

// SetImageMethod switches how the photo is supplied. Changing the method
// discards the current image.
func (f *Form) SetImageMethod(m ImageMethod) {
	if m == f.method {
		return
	}
	f.method = m
	f.fields.Image = ""
}

// SetImage sets the image field to a URL or data URL.
func (f *Form) SetImage(s string) { f.fields.Image = s }

// ClearImage removes the image.
func (f *Form) ClearImage() { f.fields.Image = "" }

// CaptureImage asks c for a photo. On failure the image field keeps its
// previous value and the returned error wraps media.ErrCapture.
func (f *Form) CaptureImage(ctx context.Context, c media.Capturer) error {
	img, err := c.Capture(ctx)
	if err != nil {
		if !errors.Is(err, media.ErrCapture) {
			err = fmt.Errorf("%w: %w", media.ErrCapture, err)
		}
		return err
	}
	f.fields.Image = img
	return nil
}

// Validate checks the required text fields.
func (f *Form) Validate() error {
	if missing := f.createItem().MissingFields(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Missing returns the names of blank required fields.
func (f *Form) Missing() []string {
	return f.createItem().MissingFields()
}

// Submit builds the request for the current form. It returns false and
// issues nothing when validation fails. A create form resets afterwards.
func (f *Form) Submit() (Intent, bool) {
	if f.Validate() != nil {
		return Intent{}, false
	}

	item := f.createItem()
	if f.original != nil {
		f.submitted = true
		return Intent{
			Kind: IntentUpdate,
			ID:   f.original.ID,
			Update: model.UpdateItem{
				CreateItem: item,
				Purchased:  f.original.Purchased,
			},
		}, true
	}

	f.Reset()
	return Intent{Kind: IntentCreate, Create: item}, true
}

// Submitted reports whether an edit form has produced an update.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Reset clears a create form. Edit forms are restored to their seed.
func (f *Form) Reset() {
	if f.original != nil {
		*f = *ForItem(*f.original)
		return
	}
	*f = Form{}
}

// createItem converts field text into a request body. Strings are sent as
// typed; blank or unparseable prices become 0.
func (f *Form) createItem() model.CreateItem {
	return model.CreateItem{
		ItemName:    f.fields.ItemName,
		Image:       f.fields.Image,
		StoreName:   f.fields.StoreName,
		Category:    f.fields.Category,
		City:        f.fields.City,
		Region:      f.fields.Region,
		ForWhom:     f.fields.ForWhom,
		PriceReal:   currency.ParseOrZero(f.fields.PriceReal),
		PriceYen:    currency.ParseOrZero(f.fields.PriceYen),
		PriceDollar: currency.ParseOrZero(f.fields.PriceDollar),
	}
}
