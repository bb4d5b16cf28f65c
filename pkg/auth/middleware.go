package auth

import (
	"encoding/json"
	"net/http"
)

// RequireSession wraps a handler so it only runs for requests carrying an
// authenticated operator session; everything else gets a 401.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if OperatorID(r) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "unauthorized",
				"message": "Operator session required",
			})
			return
		}
		next(w, r)
	}
}
