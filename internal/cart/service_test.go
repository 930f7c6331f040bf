package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/pkg/db/models"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type stubCartRepo struct {
	records      map[string]*models.CartRecord
	saveErr      error
	savedItems   []models.CartItem
	deletedLines []string
	cleared      bool
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{records: make(map[string]*models.CartRecord)}
}

func (s *stubCartRepo) FindByToken(ctx context.Context, token string) (*models.CartRecord, error) {
	return s.records[token], nil
}

func (s *stubCartRepo) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.records[record.Token] = record
	return record, nil
}

func (s *stubCartRepo) UpdateRecord(ctx context.Context, record *models.CartRecord) error {
	return nil
}

func (s *stubCartRepo) SaveItem(ctx context.Context, item *models.CartItem) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedItems = append(s.savedItems, *item)
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, cartID uuid.UUID, productID, size string) error {
	s.deletedLines = append(s.deletedLines, productID+"/"+size)
	return nil
}

func (s *stubCartRepo) ClearCart(ctx context.Context, record *models.CartRecord) error {
	s.cleared = true
	return nil
}

type stubPixel struct {
	events []pixel.Event
}

func (s *stubPixel) Track(ctx context.Context, event pixel.Event) {
	s.events = append(s.events, event)
}

func (s *stubPixel) Enabled() bool { return true }

func seedRecord(repo *stubCartRepo, token string, items ...models.CartItem) *models.CartRecord {
	record := &models.CartRecord{
		ID:               uuid.New(),
		Token:            token,
		ShippingLocation: enums.ShippingInsideDhaka,
		Items:            items,
	}
	repo.records[token] = record
	return record
}

func TestAddItemMergesMatchingLine(t *testing.T) {
	repo := newStubCartRepo()
	px := &stubPixel{}
	seedRecord(repo, "tok", models.CartItem{ProductID: "p1", Size: "M", UnitPrice: 500, Quantity: 1})

	svc, err := NewService(repo, px)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	view, err := svc.AddItem(context.Background(), "tok", types.CartLine{
		ProductID: "p1", Size: "M", Price: 500, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if len(view.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 got %d", view.Items[0].Quantity)
	}
	if view.Subtotal != 1500 {
		t.Fatalf("expected subtotal 1500 got %d", view.Subtotal)
	}
	if view.ItemCount != 3 {
		t.Fatalf("expected item count 3 got %d", view.ItemCount)
	}
}

func TestAddItemDifferentSizeAppends(t *testing.T) {
	repo := newStubCartRepo()
	px := &stubPixel{}
	seedRecord(repo, "tok", models.CartItem{ProductID: "p1", Size: "M", UnitPrice: 500, Quantity: 1})

	svc, _ := NewService(repo, px)
	view, err := svc.AddItem(context.Background(), "tok", types.CartLine{
		ProductID: "p1", Size: "L", Price: 500, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines got %d", len(view.Items))
	}
}

func TestAddItemFiresPixelEvent(t *testing.T) {
	repo := newStubCartRepo()
	px := &stubPixel{}
	svc, _ := NewService(repo, px)

	_, err := svc.AddItem(context.Background(), "tok", types.CartLine{
		ProductID: "p1", Price: 250, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if len(px.events) != 1 {
		t.Fatalf("expected one pixel event got %d", len(px.events))
	}
	if px.events[0].Name != enums.PixelAddToCart {
		t.Fatalf("unexpected event %s", px.events[0].Name)
	}
}

func TestAddItemValidation(t *testing.T) {
	repo := newStubCartRepo()
	svc, _ := NewService(repo, &stubPixel{})

	_, err := svc.AddItem(context.Background(), "tok", types.CartLine{ProductID: "", Quantity: 1})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}

	_, err = svc.AddItem(context.Background(), "tok", types.CartLine{ProductID: "p1", Quantity: 0})
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestRemoveItemMissingMatchIsNoOp(t *testing.T) {
	repo := newStubCartRepo()
	seedRecord(repo, "tok", models.CartItem{ProductID: "p1", Size: "M", UnitPrice: 100, Quantity: 1})
	svc, _ := NewService(repo, &stubPixel{})

	view, err := svc.RemoveItem(context.Background(), "tok", "p1", "XL")
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected untouched cart got %d lines", len(view.Items))
	}
	if len(repo.deletedLines) != 0 {
		t.Fatalf("expected no delete calls got %v", repo.deletedLines)
	}
}

func TestRemoveItemDropsMatchingLineOnly(t *testing.T) {
	repo := newStubCartRepo()
	seedRecord(repo, "tok",
		models.CartItem{ProductID: "p1", Size: "M", UnitPrice: 100, Quantity: 1},
		models.CartItem{ProductID: "p1", Size: "L", UnitPrice: 100, Quantity: 2},
	)
	svc, _ := NewService(repo, &stubPixel{})

	view, err := svc.RemoveItem(context.Background(), "tok", "p1", "M")
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 remaining line got %d", len(view.Items))
	}
	if view.Items[0].Size != "L" {
		t.Fatalf("wrong line removed, kept size %q", view.Items[0].Size)
	}
}

func TestUpdateQuantityMissingMatchIsNoOp(t *testing.T) {
	repo := newStubCartRepo()
	seedRecord(repo, "tok", models.CartItem{ProductID: "p1", Size: "M", UnitPrice: 100, Quantity: 1})
	svc, _ := NewService(repo, &stubPixel{})

	view, err := svc.UpdateQuantity(context.Background(), "tok", "missing", "M", 5)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if view.Items[0].Quantity != 1 {
		t.Fatalf("quantity changed unexpectedly to %d", view.Items[0].Quantity)
	}
	if len(repo.savedItems) != 0 {
		t.Fatalf("expected no save calls got %d", len(repo.savedItems))
	}
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	repo := newStubCartRepo()
	svc, _ := NewService(repo, &stubPixel{})

	_, err := svc.UpdateQuantity(context.Background(), "tok", "p1", "M", 0)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestGetCreatesCartWithDefaults(t *testing.T) {
	repo := newStubCartRepo()
	svc, _ := NewService(repo, &stubPixel{})

	view, err := svc.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ShippingLocation != enums.ShippingInsideDhaka {
		t.Fatalf("expected inside-dhaka default got %s", view.ShippingLocation)
	}
	if view.ShippingCost != 60 {
		t.Fatalf("expected shipping cost 60 got %d", view.ShippingCost)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart got %d lines", len(view.Items))
	}
}

func TestSetShippingLocationOutsideDhaka(t *testing.T) {
	repo := newStubCartRepo()
	seedRecord(repo, "tok")
	svc, _ := NewService(repo, &stubPixel{})

	view, err := svc.SetShippingLocation(context.Background(), "tok", enums.ShippingOutsideDhaka)
	if err != nil {
		t.Fatalf("set shipping location: %v", err)
	}
	if view.ShippingCost != 100 {
		t.Fatalf("expected shipping cost 100 got %d", view.ShippingCost)
	}
}

func TestSetShippingLocationRejectsUnknown(t *testing.T) {
	repo := newStubCartRepo()
	svc, _ := NewService(repo, &stubPixel{})

	_, err := svc.SetShippingLocation(context.Background(), "tok", enums.ShippingLocation("moon"))
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestSetDirectPurchaseItemAndClearSlot(t *testing.T) {
	repo := newStubCartRepo()
	seedRecord(repo, "tok")
	svc, _ := NewService(repo, &stubPixel{})

	line := &types.CartLine{ProductID: "p9", Price: 999, Quantity: 1}
	view, err := svc.SetDirectPurchaseItem(context.Background(), "tok", line)
	if err != nil {
		t.Fatalf("set direct purchase item: %v", err)
	}
	if view.DirectPurchaseItem == nil || view.DirectPurchaseItem.ProductID != "p9" {
		t.Fatalf("direct purchase slot not set: %+v", view.DirectPurchaseItem)
	}

	view, err = svc.SetDirectPurchaseItem(context.Background(), "tok", nil)
	if err != nil {
		t.Fatalf("clear direct purchase item: %v", err)
	}
	if view.DirectPurchaseItem != nil {
		t.Fatalf("expected cleared slot got %+v", view.DirectPurchaseItem)
	}
}

func TestClearEmptiesItemsAndSlotTogether(t *testing.T) {
	repo := newStubCartRepo()
	record := seedRecord(repo, "tok", models.CartItem{ProductID: "p1", UnitPrice: 100, Quantity: 1})
	record.DirectPurchaseItem = &types.CartLine{ProductID: "p2", Price: 200, Quantity: 1}
	svc, _ := NewService(repo, &stubPixel{})

	if err := svc.Clear(context.Background(), "tok"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !repo.cleared {
		t.Fatal("expected item delete call")
	}
	if record.DirectPurchaseItem != nil {
		t.Fatal("expected direct purchase slot cleared")
	}
}

func TestServiceRequiresToken(t *testing.T) {
	repo := newStubCartRepo()
	svc, _ := NewService(repo, &stubPixel{})

	_, err := svc.Get(context.Background(), "")
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}
