package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marqenbd/marqen-backend/pkg/db/models"
)

// Repository exposes persistence operations for cart sessions.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByToken loads the cart session with its items, or nil when the token
// has no cart yet.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("token = ?", token).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new cart session.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecord persists the session-level columns (shipping location,
// direct-purchase slot).
func (r *Repository) UpdateRecord(ctx context.Context, record *models.CartRecord) error {
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"shipping_location":    record.ShippingLocation,
			"direct_purchase_item": record.DirectPurchaseItem,
		}).Error
}

// SaveItem inserts or updates one cart line.
func (r *Repository) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes the line matching (product_id, size) from the cart.
func (r *Repository) DeleteItem(ctx context.Context, cartID uuid.UUID, productID, size string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Delete(&models.CartItem{}).Error
}

// DeleteItems removes every line from the cart.
func (r *Repository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

// ClearCart removes every line and persists the emptied session columns in
// one transaction, so a failed clear never leaves a half-emptied cart.
func (r *Repository) ClearCart(ctx context.Context, record *models.CartRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := r.WithTx(tx)
		if err := scoped.DeleteItems(ctx, record.ID); err != nil {
			return err
		}
		return scoped.UpdateRecord(ctx, record)
	})
}
