package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/responses"
	"github.com/marqenbd/marqen-backend/api/validators"
	"github.com/marqenbd/marqen-backend/internal/pricing"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

type promoApplyRequest struct {
	Code     string `json:"code" validate:"required"`
	Subtotal int64  `json:"subtotal" validate:"min=0"`
}

type promoApplyResponse struct {
	Code     string `json:"code"`
	Percent  int64  `json:"percent"`
	Discount int64  `json:"discount"`
}

// PromoApply resolves a promo code against the hardcoded discount table and
// returns the discount for the given subtotal.
func PromoApply(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload promoApplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		percent, ok := pricing.PromoPercent(payload.Code)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid promo code"))
			return
		}

		responses.WriteSuccess(w, promoApplyResponse{
			Code:     payload.Code,
			Percent:  percent,
			Discount: pricing.Discount(payload.Subtotal, percent),
		})
	}
}
