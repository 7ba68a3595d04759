package middleware

import (
	"net/http"
	"strings"

	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

// APIKey guards destructive routes (mapping save, void dispatch) with the
// static key from config. Accepts either "Authorization: Bearer <key>" or
// an "X-API-Key" header.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				logger.Warn("API key not configured, rejecting protected request",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "API key not configured")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				authHeader := r.Header.Get("Authorization")
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && parts[0] == "Bearer" {
					provided = parts[1]
				}
			}

			if provided != key {
				logger.Warn("Invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
