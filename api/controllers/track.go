package controllers

import (
	"net/http"

	"github.com/marqenbd/marqen-backend/api/responses"
	"github.com/marqenbd/marqen-backend/api/validators"
	pixelsvc "github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
)

type trackRequest struct {
	Event  string         `json:"event" validate:"required"`
	Key    string         `json:"key"`
	Params map[string]any `json:"params"`
}

// TrackEvent ingests a page-driven analytics event (PageView, ViewContent,
// ...) and forwards it to the pixel dispatcher. Dispatch is fire-and-forget;
// the response only acknowledges receipt.
func TrackEvent(svc pixelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload trackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		name := enums.PixelEvent(payload.Event)
		if !name.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown event"))
			return
		}

		svc.Track(r.Context(), pixelsvc.Event{
			Name:   name,
			Key:    payload.Key,
			Params: payload.Params,
		})

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]any{
			"accepted": true,
			"enabled":  svc.Enabled(),
		})
	}
}
