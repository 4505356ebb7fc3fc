package middleware

import (
	"net/http"

	inHttp "github.com/absrenew/storefront/internal/http"
)

// Cors answers preflight requests so browser clients can reach the POST-only
// cart endpoints. Anything that is neither a preflight nor an allowed method
// falls through to the router's 405 handler.
func Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(inHttp.KeyHeaderCorsOrigin, inHttp.ValueHeaderCorsOrigin)
		w.Header().Set(inHttp.KeyHeaderCorsMethods, "POST, GET, PUT, OPTIONS")
		w.Header().Set(inHttp.KeyHeaderCorsHeaders, "Content-Type, Authorization, X-Request-Id")
		w.Header().Set(inHttp.KeyHeaderCorsMaxAge, "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// MethodNotAllowed is mounted as the router's MethodNotAllowedHandler.
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
			"ok":         false,
			"statusCode": http.StatusMethodNotAllowed,
			"message":    "method not allowed",
		})
	})
}
