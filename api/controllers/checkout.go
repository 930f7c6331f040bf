package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/middleware"
	"github.com/marqenbd/marqen-backend/api/responses"
	"github.com/marqenbd/marqen-backend/api/validators"
	checkoutsvc "github.com/marqenbd/marqen-backend/internal/checkout"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

type checkoutRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	PromoCode     string `json:"promoCode"`
}

// CheckoutSubmit runs the order submission flow for the caller's cart
// session.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		confirmation, err := svc.Submit(r.Context(), token, checkoutsvc.Input{
			FirstName:     payload.FirstName,
			LastName:      payload.LastName,
			Email:         payload.Email,
			Phone:         payload.Phone,
			Address:       payload.Address,
			City:          payload.City,
			PaymentMethod: method,
			PromoCode:     payload.PromoCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
