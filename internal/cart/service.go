package cart

import (
	"context"
	"fmt"

	"github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/internal/pricing"
	"github.com/marqenbd/marqen-backend/pkg/db/models"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

// Service owns the token-keyed cart session: line items, the shipping
// preference, and the Buy Now slot. Derived figures (subtotal, item count,
// shipping cost) are recomputed on every read and never stored.
type Service interface {
	Get(ctx context.Context, token string) (*types.CartView, error)
	AddItem(ctx context.Context, token string, line types.CartLine) (*types.CartView, error)
	RemoveItem(ctx context.Context, token, productID, size string) (*types.CartView, error)
	UpdateQuantity(ctx context.Context, token, productID, size string, quantity int) (*types.CartView, error)
	SetShippingLocation(ctx context.Context, token string, location enums.ShippingLocation) (*types.CartView, error)
	SetDirectPurchaseItem(ctx context.Context, token string, line *types.CartLine) (*types.CartView, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	repo  CartRepository
	pixel pixel.Service
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, pixelSvc pixel.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if pixelSvc == nil {
		return nil, fmt.Errorf("pixel service required")
	}
	return &service{repo: repo, pixel: pixelSvc}, nil
}

func (s *service) Get(ctx context.Context, token string) (*types.CartView, error) {
	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}
	return view(record), nil
}

// AddItem merges by (product_id, size): a matching line gains the added
// quantity, anything else appends. The AddToCart pixel event fires as a
// side effect of the call; a pixel failure never rolls back the write.
func (s *service) AddItem(ctx context.Context, token string, line types.CartLine) (*types.CartView, error) {
	if line.ProductID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if line.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if line.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}

	item := findItem(record, line.ProductID, line.Size)
	if item != nil {
		item.Quantity += line.Quantity
	} else {
		record.Items = append(record.Items, models.CartItem{
			CartID:    record.ID,
			ProductID: line.ProductID,
			Size:      line.Size,
			Name:      line.Name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
		item = &record.Items[len(record.Items)-1]
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart item")
	}

	s.pixel.Track(ctx, pixel.AddToCart(line))

	return view(record), nil
}

// RemoveItem drops the line matching (product_id, size). A missing match is
// a no-op, same as filtering the line list.
func (s *service) RemoveItem(ctx context.Context, token, productID, size string) (*types.CartView, error) {
	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}

	if findItem(record, productID, size) == nil {
		return view(record), nil
	}

	if err := s.repo.DeleteItem(ctx, record.ID, productID, size); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
	}
	removeLine(record, productID, size)

	return view(record), nil
}

// UpdateQuantity sets the quantity on the matching line. Bounds beyond
// quantity >= 1 are the caller's concern; a missing match is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, token, productID, size string, quantity int) (*types.CartView, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}

	item := findItem(record, productID, size)
	if item == nil {
		return view(record), nil
	}

	item.Quantity = quantity
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart quantity")
	}

	return view(record), nil
}

func (s *service) SetShippingLocation(ctx context.Context, token string, location enums.ShippingLocation) (*types.CartView, error) {
	if !location.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping location")
	}

	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}

	record.ShippingLocation = location
	if err := s.repo.UpdateRecord(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating shipping location")
	}

	return view(record), nil
}

// SetDirectPurchaseItem fills or clears (nil) the Buy Now slot. When
// present, the slot supersedes the cart contents at checkout.
func (s *service) SetDirectPurchaseItem(ctx context.Context, token string, line *types.CartLine) (*types.CartView, error) {
	if line != nil {
		if line.ProductID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}

	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return nil, err
	}

	record.DirectPurchaseItem = line
	if err := s.repo.UpdateRecord(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating direct purchase item")
	}

	return view(record), nil
}

// Clear empties the line items and the direct-purchase slot together.
func (s *service) Clear(ctx context.Context, token string) error {
	record, err := s.loadOrCreate(ctx, token)
	if err != nil {
		return err
	}

	record.Items = nil
	record.DirectPurchaseItem = nil
	if err := s.repo.ClearCart(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func (s *service) loadOrCreate(ctx context.Context, token string) (*models.CartRecord, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	record, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record != nil {
		return record, nil
	}

	record, err = s.repo.Create(ctx, &models.CartRecord{
		Token:            token,
		ShippingLocation: enums.ShippingInsideDhaka,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return record, nil
}

func findItem(record *models.CartRecord, productID, size string) *models.CartItem {
	for i := range record.Items {
		if record.Items[i].ProductID == productID && record.Items[i].Size == size {
			return &record.Items[i]
		}
	}
	return nil
}

func removeLine(record *models.CartRecord, productID, size string) {
	kept := record.Items[:0]
	for _, item := range record.Items {
		if item.ProductID == productID && item.Size == size {
			continue
		}
		kept = append(kept, item)
	}
	record.Items = kept
}

func view(record *models.CartRecord) *types.CartView {
	lines := make([]types.CartLine, len(record.Items))
	priced := make([]pricing.Line, len(record.Items))
	var count int
	for i, item := range record.Items {
		lines[i] = item.Line()
		priced[i] = pricing.Line{Price: item.UnitPrice, Quantity: item.Quantity}
		count += item.Quantity
	}

	return &types.CartView{
		Token:              record.Token,
		Items:              lines,
		DirectPurchaseItem: record.DirectPurchaseItem,
		ShippingLocation:   record.ShippingLocation,
		Subtotal:           pricing.Subtotal(priced),
		ItemCount:          count,
		ShippingCost:       record.ShippingLocation.Fee(),
	}
}
