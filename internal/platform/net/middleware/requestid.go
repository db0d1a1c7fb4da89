// Package middleware provides HTTP middleware shared by all processes
package middleware

import (
	"net/http"

	"showrunner/internal/platform/logger"
	pnet "showrunner/internal/platform/net"

	"github.com/google/uuid"
)

// RequestID assigns a request id (or adopts the caller's X-Request-ID) and
// mirrors it on the response and the request-scoped logger
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := pnet.WithRequest(r.Context(), reqID)
		ctx = logger.WithRequest(ctx, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
