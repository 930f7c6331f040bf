package checkout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/marqenbd/marqen-backend/internal/notify"
	"github.com/marqenbd/marqen-backend/internal/orders"
	"github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/internal/pricing"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/metrics"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

// Input is the validated checkout form.
type Input struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	PaymentMethod enums.PaymentMethod
	PromoCode     string
}

// Confirmation is the submission result. Warnings lists the best-effort
// steps that failed without blocking the order.
type Confirmation struct {
	OrderNumber string              `json:"orderNumber"`
	Snapshot    types.OrderSnapshot `json:"order"`
	Warnings    []string            `json:"warnings,omitempty"`
}

type cartStore interface {
	Get(ctx context.Context, token string) (*types.CartView, error)
	Clear(ctx context.Context, token string) error
}

type orderPoster interface {
	CreateOrder(ctx context.Context, payload types.OrderPayload) error
}

type emailSender interface {
	SendOrderEmails(ctx context.Context, input notify.OrderEmailInput) (*notify.SendReport, error)
}

type snapshotWriter interface {
	Save(ctx context.Context, cartToken string, snapshot types.OrderSnapshot) error
}

type pixelTracker interface {
	Track(ctx context.Context, event pixel.Event)
}

// Service runs the checkout submission flow. The flow is deliberately not
// transactional: the upstream order post and the notification emails are
// best-effort, and the confirmation snapshot is produced regardless, with
// each absorbed failure surfaced as a warning.
type Service interface {
	Submit(ctx context.Context, cartToken string, input Input) (*Confirmation, error)
}

type service struct {
	carts     cartStore
	upstream  orderPoster
	notifier  emailSender
	snapshots snapshotWriter
	pixel     pixelTracker
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
	now       func() time.Time
}

// NewService wires the checkout flow.
func NewService(
	carts cartStore,
	upstream orderPoster,
	notifier emailSender,
	snapshots snapshotWriter,
	pixelSvc pixelTracker,
	logg *logger.Logger,
	m *metrics.StorefrontMetrics,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if upstream == nil {
		return nil, fmt.Errorf("upstream client required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if pixelSvc == nil {
		return nil, fmt.Errorf("pixel service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:     carts,
		upstream:  upstream,
		notifier:  notifier,
		snapshots: snapshots,
		pixel:     pixelSvc,
		logg:      logg,
		metrics:   m,
		now:       time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, cartToken string, input Input) (*Confirmation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, err
	}

	// A filled Buy Now slot supersedes the cart contents.
	lines := cart.Items
	if cart.DirectPurchaseItem != nil {
		lines = []types.CartLine{*cart.DirectPurchaseItem}
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to check out")
	}

	promoPercent := int64(0)
	appliedCode := ""
	if input.PromoCode != "" {
		percent, ok := pricing.PromoPercent(input.PromoCode)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid promo code")
		}
		promoPercent = percent
		appliedCode = input.PromoCode
	}

	priced := make([]pricing.Line, len(lines))
	for i, line := range lines {
		priced[i] = pricing.Line{Price: line.Price, Quantity: line.Quantity}
	}
	subtotal := pricing.Subtotal(priced)
	promoDiscount := pricing.Discount(subtotal, promoPercent)
	shipping := cart.ShippingLocation.Fee()
	total := pricing.Total(subtotal, promoDiscount, shipping)

	customerName := input.FirstName + " " + input.LastName
	now := s.now()
	orderNumber := orders.NewOrderNumber(now)
	ctx = s.logg.WithOrderNumber(ctx, orderNumber)

	s.pixel.Track(ctx, pixel.InitiateCheckout(lines, total))

	var warnings []string
	var absorbed error

	if err := s.upstream.CreateOrder(ctx, buildOrderPayload(input, customerName, lines)); err != nil {
		// The order still completes locally; the merchant reconciles from
		// the admin email.
		s.metrics.IncCheckoutWarning("order_api")
		s.logg.Error(ctx, "upstream order submission failed", err)
		warnings = append(warnings, "order could not be submitted to the order system")
		absorbed = multierr.Append(absorbed, err)
	}

	if _, err := s.notifier.SendOrderEmails(ctx, notify.OrderEmailInput{
		CustomerName:  customerName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		City:          input.City,
		CartItems:     lines,
		Subtotal:      subtotal,
		PromoDiscount: promoDiscount,
		Shipping:      shipping,
		TotalAmount:   total,
		PaymentMethod: input.PaymentMethod,
		OrderNumber:   orderNumber,
	}); err != nil {
		s.metrics.IncCheckoutWarning("email")
		s.logg.Error(ctx, "order notification emails failed", err)
		warnings = append(warnings, "order confirmation email could not be sent")
		absorbed = multierr.Append(absorbed, err)
	}

	snapshot := types.OrderSnapshot{
		OrderNumber:      orderNumber,
		CustomerName:     customerName,
		Email:            input.Email,
		Phone:            input.Phone,
		Address:          input.Address,
		City:             input.City,
		Items:            lines,
		Subtotal:         subtotal,
		PromoDiscount:    promoDiscount,
		AppliedPromoCode: appliedCode,
		Shipping:         shipping,
		ShippingLocation: cart.ShippingLocation,
		Total:            total,
		PaymentMethod:    input.PaymentMethod.DisplayName(),
		OrderDate:        now.Format(time.RFC3339),
	}

	if err := s.snapshots.Save(ctx, cartToken, snapshot); err != nil {
		s.metrics.IncCheckoutWarning("snapshot")
		s.logg.Error(ctx, "order snapshot write failed", err)
		warnings = append(warnings, "order confirmation may not be available")
		absorbed = multierr.Append(absorbed, err)
	}

	if err := s.carts.Clear(ctx, cartToken); err != nil {
		s.metrics.IncCheckoutWarning("cart_clear")
		s.logg.Error(ctx, "cart clear after checkout failed", err)
		warnings = append(warnings, "cart could not be cleared")
		absorbed = multierr.Append(absorbed, err)
	}

	s.pixel.Track(ctx, pixel.OrderPlaced(orderNumber, input.PaymentMethod, lines, total))
	s.metrics.IncOrderPlaced(input.PaymentMethod.String())

	if absorbed != nil {
		s.logg.Warn(s.logg.WithField(ctx, "absorbed_errors", absorbed.Error()), "checkout completed with warnings")
	} else {
		s.logg.Info(ctx, "checkout completed")
	}

	return &Confirmation{
		OrderNumber: orderNumber,
		Snapshot:    snapshot,
		Warnings:    warnings,
	}, nil
}

func validateInput(input Input) error {
	missing := []string{}
	for field, value := range map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
		"phone":      input.Phone,
		"address":    input.Address,
		"city":       input.City,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required shipping fields").
			WithDetails(map[string]any{"missing": missing})
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	return nil
}

func buildOrderPayload(input Input, customerName string, lines []types.CartLine) types.OrderPayload {
	refs := make([]types.OrderItemRef, len(lines))
	for i, line := range lines {
		refs[i] = types.OrderItemRef{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return types.OrderPayload{
		UserInfo: types.OrderUserInfo{
			FullName: customerName,
			Email:    input.Email,
			Phone:    input.Phone,
		},
		OrderItems: refs,
		ShippingAddress: types.OrderShippingAddress{
			FullName: customerName,
			Phone:    input.Phone,
			Email:    input.Email,
			Address:  input.Address,
			City:     input.City,
		},
		PaymentMethod: input.PaymentMethod,
	}
}
