package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/marqenbd/marqen-backend/pkg/db/models"
)

// CartRepository is the persistence surface the cart service consumes.
type CartRepository interface {
	FindByToken(ctx context.Context, token string) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	UpdateRecord(ctx context.Context, record *models.CartRecord) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, productID, size string) error
	ClearCart(ctx context.Context, record *models.CartRecord) error
}
