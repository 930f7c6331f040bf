package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/middleware"
	"github.com/marqenbd/marqen-backend/api/responses"
	ordersvc "github.com/marqenbd/marqen-backend/internal/orders"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

// OrdersLast returns the read-once confirmation snapshot for the caller's
// cart session. A second read, or a refresh after the TTL, finds nothing.
func OrdersLast(svc ordersvc.SnapshotService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token missing"))
			return
		}

		snapshot, err := svc.Take(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
