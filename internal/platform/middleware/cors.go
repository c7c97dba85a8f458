package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Runtime headers a caller may forward to the invoke endpoint.
var invocationHeaders = []string{
	"Lambda-Runtime-Aws-Request-Id",
	"Lambda-Runtime-Deadline-Ms",
	"Lambda-Runtime-Invoked-Function-Arn",
}

// CORS returns a permissive middleware for browser callers. Origins are not
// restricted; the greeting carries no credentials.
func CORS() func(http.Handler) http.Handler {
	allowed := append([]string{
		"Accept",
		"Content-Type",
		"traceparent",
		chimiddleware.RequestIDHeader,
	}, invocationHeaders...)

	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: allowed,
		ExposedHeaders: []string{"Link", chimiddleware.RequestIDHeader},
		MaxAge:         300,
	})
}
