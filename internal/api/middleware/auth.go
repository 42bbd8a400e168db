package middleware

import (
	"net/http"

	"github.com/soleraspa/booking-service/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth gates the admin routes behind a shared token carried in the
// X-Admin-Token header. Requests with a missing or wrong token get 401.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get(adminTokenHeader) != token {
				handlers.RespondUnauthorized(w, "token de administrador inválido")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
