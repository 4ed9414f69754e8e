// Package storage provides the data persistence layer for the catalog server.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrEmptySlice  = errors.New("slice cannot be empty")
	ErrInvalidID   = errors.New("invalid item id")
	ErrInvalidItem = errors.New("invalid item")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// validateItem checks the required text fields. Prices are taken as sent.
func validateItem(item model.CreateItem) error {
	if missing := item.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidItem, strings.Join(missing, ", "))
	}
	return nil
}

// validateItems validates a batch of items.
func validateItems(items []model.CreateItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items", ErrEmptySlice)
	}
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	return nil
}
