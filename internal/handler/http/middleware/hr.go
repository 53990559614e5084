package middleware

import (
	"net/http"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

// HROnly requires the caller to be an HR reviewer under some rule.
func HROnly(accessService rule.AccessService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			isHR, err := accessService.IsHR(r.Context(), caller.UserID)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !isHR {
				response.Forbidden(w, "HR access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
