package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

const corsMaxAgeSeconds = 86400

// CORS returns a handler that adds CORS headers for allowed origins and
// answers OPTIONS preflight requests.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeSeconds,
	})
	return c.Handler(next)
}
