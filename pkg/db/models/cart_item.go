package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marqenbd/marqen-backend/pkg/types"
)

// CartItem persists one cart line tied to a CartRecord. Uniqueness within a
// cart is (product_id, size); adds that hit an existing pair increment
// quantity instead of inserting.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index:idx_cart_product_size,unique,priority:1"`
	ProductID string    `gorm:"column:product_id;not null;index:idx_cart_product_size,unique,priority:2"`
	Size      string    `gorm:"column:size;not null;default:'';index:idx_cart_product_size,unique,priority:3"`
	Name      string    `gorm:"column:name;not null"`
	UnitPrice int64     `gorm:"column:unit_price;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Image     string    `gorm:"column:image"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns the primary key so the model works on both postgres
// and sqlite.
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Line converts the row to its wire shape.
func (c CartItem) Line() types.CartLine {
	return types.CartLine{
		ProductID: c.ProductID,
		Name:      c.Name,
		Price:     c.UnitPrice,
		Quantity:  c.Quantity,
		Image:     c.Image,
		Size:      c.Size,
	}
}
