package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/middleware"
	"github.com/marqenbd/marqen-backend/api/responses"
	"github.com/marqenbd/marqen-backend/api/validators"
	cartsvc "github.com/marqenbd/marqen-backend/internal/cart"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

func cartToken(r *http.Request) (string, error) {
	token := middleware.CartTokenFromContext(r.Context())
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token missing")
	}
	return token, nil
}

// CartFetch returns the cart session with derived totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Price     int64  `json:"price" validate:"min=0"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Image     string `json:"image"`
	Size      string `json:"size"`
}

// CartAddItem merges an item into the cart by (productId, size).
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), token, types.CartLine{
			ProductID: payload.ProductID,
			Name:      payload.Name,
			Price:     payload.Price,
			Quantity:  payload.Quantity,
			Image:     payload.Image,
			Size:      payload.Size,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type updateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CartUpdateQuantity sets the quantity on a matching line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), token, payload.ProductID, payload.Size, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type removeItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), token, payload.ProductID, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type shippingLocationRequest struct {
	Location string `json:"location" validate:"required,oneof=inside-dhaka outside-dhaka"`
}

// CartSetShipping updates the delivery fee preference.
func CartSetShipping(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shippingLocationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := enums.ParseShippingLocation(payload.Location)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping location"))
			return
		}

		view, err := svc.SetShippingLocation(r.Context(), token, location)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type directPurchaseRequest struct {
	// Item fills the Buy Now slot; null clears it.
	Item *addItemRequest `json:"item"`
}

// CartSetDirectPurchase fills or clears the Buy Now slot.
func CartSetDirectPurchase(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload directPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var line *types.CartLine
		if payload.Item != nil {
			line = &types.CartLine{
				ProductID: payload.Item.ProductID,
				Name:      payload.Item.Name,
				Price:     payload.Item.Price,
				Quantity:  payload.Item.Quantity,
				Image:     payload.Item.Image,
				Size:      payload.Item.Size,
			}
		}

		view, err := svc.SetDirectPurchaseItem(r.Context(), token, line)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart and the Buy Now slot.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
