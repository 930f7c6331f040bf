package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marqenbd/marqen-backend/api/responses"
	catalogsvc "github.com/marqenbd/marqen-backend/internal/catalog"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

// ProductsList returns the full catalog listing.
func ProductsList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// ProductDetail resolves a slug-id path segment to a single product.
func ProductDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Product(r.Context(), chi.URLParam(r, "slugID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// FlashSaleList returns the flash-sale listings with sale pricing and
// countdowns.
func FlashSaleList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.FlashSale(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// BestsellersList returns the bestseller listings.
func BestsellersList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.Bestsellers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
