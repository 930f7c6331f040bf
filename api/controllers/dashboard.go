package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/responses"
	dashboardsvc "github.com/marqenbd/marqen-backend/internal/dashboard"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

// DashboardOrderStats proxies the upstream order counters.
func DashboardOrderStats(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.OrderStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
