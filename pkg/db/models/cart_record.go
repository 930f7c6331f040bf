package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marqenbd/marqen-backend/pkg/enums"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

// CartRecord is the server-side cart session, keyed by the opaque token the
// storefront client carries. It is the persistence home of the browser's
// old "cart-storage" blob: line items, shipping preference, and the
// optional Buy Now slot.
type CartRecord struct {
	ID                 uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Token              string                 `gorm:"column:token;uniqueIndex;not null"`
	ShippingLocation   enums.ShippingLocation `gorm:"column:shipping_location;not null;default:'inside-dhaka'"`
	DirectPurchaseItem *types.CartLine        `gorm:"column:direct_purchase_item;serializer:json"`
	Items              []CartItem             `gorm:"foreignKey:CartID;references:ID"`
	CreatedAt          time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (CartRecord) TableName() string {
	return "cart_records"
}

// BeforeCreate assigns the primary key so the model works on both postgres
// and sqlite.
func (c *CartRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ShippingLocation == "" {
		c.ShippingLocation = enums.ShippingInsideDhaka
	}
	return nil
}
