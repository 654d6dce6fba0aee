package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/powerguard/autonomy-planner/pkg/requestid"
)

// RequestID takes the request id from the X-Request-Id header, then from chi's RequestID
// middleware, and generates one otherwise. The id is stored in the request context and echoed
// back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}
		if id == "" {
			id = requestid.Generate()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.ToContext(r.Context(), id)))
	})
}
