package response

import (
	"errors"
	"net/http"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var dupGroups *rule.DuplicateGroupsError
	if errors.As(err, &dupGroups) {
		Conflict(w, dupGroups.Error())
		return
	}

	switch {
	// Entry domain errors
	case errors.Is(err, entry.ErrEntryNotFound):
		NotFound(w, "Entry not found")
	case errors.Is(err, entry.ErrDuplicateEntry):
		Conflict(w, "An entry already exists for this date")
	case errors.Is(err, entry.ErrOneSidedSpan):
		BadRequest(w, "Start and end must be provided together", nil)
	case errors.Is(err, entry.ErrInvalidWorkDate):
		BadRequest(w, "Work date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, entry.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this entry")

	// Rule domain errors
	case errors.Is(err, rule.ErrRuleNotFound):
		NotFound(w, "Access rule not found")
	case errors.Is(err, rule.ErrInvalidRules):
		BadRequest(w, "Access rules payload is invalid", nil)

	// User config domain errors
	case errors.Is(err, userconfig.ErrConfigNotFound):
		NotFound(w, "User config not found")
	case errors.Is(err, userconfig.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this user config")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
