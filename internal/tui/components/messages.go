package components

import (
	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/model"
)

// FormSubmittedMsg carries a validated form intent to the parent.
type FormSubmittedMsg struct {
	Intent editor.Intent
}

// FormCancelledMsg closes the form without submitting.
type FormCancelledMsg struct{}

// CaptureRequestMsg asks the parent to run a photo capture for the form.
// Path is set for gallery captures.
type CaptureRequestMsg struct {
	Path   string
	Method editor.ImageMethod
}

// FilterAppliedMsg replaces the active criteria.
type FilterAppliedMsg struct {
	Criteria filter.Criteria
}

// FilterCancelledMsg closes the filter panel keeping the old criteria.
type FilterCancelledMsg struct{}

// ItemSelectedMsg opens the detail view of an item.
type ItemSelectedMsg struct {
	Item model.ShoppingItem
}
