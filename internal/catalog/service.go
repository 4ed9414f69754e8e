// Package catalog talks to the remote shopping-item service.
package catalog

import (
	"context"

	"github.com/Veraticus/compras/internal/model"
)

// Service is the remote catalog as seen by the list controller and the CLI.
// The remote side is the source of truth; callers keep only a mirror.
type Service interface {
	List(ctx context.Context) ([]model.ShoppingItem, error)
	Get(ctx context.Context, id int) (model.ShoppingItem, error)
	Create(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error)
	Update(ctx context.Context, id int, item model.UpdateItem) error
	TogglePurchased(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (model.RemoteStats, error)
}
