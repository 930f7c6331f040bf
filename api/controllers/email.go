package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/responses"
	"github.com/marqenbd/marqen-backend/api/validators"
	notifysvc "github.com/marqenbd/marqen-backend/internal/notify"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type sendOrderEmailRequest struct {
	CustomerName  string           `json:"customerName" validate:"required"`
	Email         string           `json:"email" validate:"omitempty,email"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	CartItems     []types.CartLine `json:"cartItems" validate:"required,min=1,dive"`
	Subtotal      int64            `json:"subtotal"`
	PromoDiscount int64            `json:"promoDiscount"`
	Shipping      int64            `json:"shipping"`
	TotalAmount   int64            `json:"totalAmount"`
	PaymentMethod string           `json:"paymentMethod"`
	OrderNumber   string           `json:"orderNumber"`
}

// SendOrderEmail is the standalone email route: admin copy always, customer
// copy when an address is present. Missing customerName or cartItems is a
// 400; an unset or placeholder Resend key is a 500.
func SendOrderEmail(svc notifysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendOrderEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Callers send either the wire value or the display name; an
		// unrecognized method stays free-form and the payment section is
		// simply omitted from the rendered email.
		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			method = enums.PaymentMethod(payload.PaymentMethod)
		}

		report, err := svc.SendOrderEmails(r.Context(), notifysvc.OrderEmailInput{
			CustomerName:  payload.CustomerName,
			Email:         payload.Email,
			Phone:         payload.Phone,
			Address:       payload.Address,
			City:          payload.City,
			CartItems:     payload.CartItems,
			Subtotal:      payload.Subtotal,
			PromoDiscount: payload.PromoDiscount,
			Shipping:      payload.Shipping,
			TotalAmount:   payload.TotalAmount,
			PaymentMethod: method,
			OrderNumber:   payload.OrderNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
