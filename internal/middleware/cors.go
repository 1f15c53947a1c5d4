package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors admits browser canvases from origins, or from anywhere when origins
// is empty. Only the methods the game routes answer to are allowed.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options).Handler
}
