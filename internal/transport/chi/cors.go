package chi

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware allows browsers on other origins to read the scene API.
// An empty origin list disables CORS handling (pass-through).
func CORSMiddleware(allowedOrigins []string, maxAgeSec int) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag", "Retry-After", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           maxAgeSec,
	})
}
