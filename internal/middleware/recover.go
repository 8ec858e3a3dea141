package middleware

import (
	"encoding/json"
	"log"
	"net/http"
)

// Recover turns a handler panic into a generic 500 instead of killing the
// process.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[recover] panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "An unexpected error occurred"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
