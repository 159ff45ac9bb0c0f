package middleware

import "net/http"

// Preflight answers every OPTIONS request with 200 and no body. It runs
// after the CORS handler so the preflight headers are already set.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
