package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/marqenbd/marqen-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

type contextKey string

const ctxCartToken contextKey = "cart_token"

// CartToken ensures every storefront request carries a cart session token.
// Clients that arrive without one get a freshly minted token, echoed back in
// the response header so the browser can persist it.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(cartTokenHeader)
			if token == "" {
				token = uuid.NewString()
			}

			w.Header().Set(cartTokenHeader, token)

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCartToken injects the cart token into the context.
func WithCartToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartToken, token)
}

// CartTokenFromContext returns the cart token minted or propagated by the
// CartToken middleware.
func CartTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartToken).(string); ok {
		return v
	}
	return ""
}
