package middleware

import (
	"net/http"

	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

// AdminOnly requires membership in the admin group.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		if !caller.IsAdmin() {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
