package http

import (
	"net/http"

	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/overtime"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

type OverviewHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	HRUsers(w http.ResponseWriter, r *http.Request)
	HRUserList(w http.ResponseWriter, r *http.Request)
}

type overviewHandlerImpl struct {
	overtimeService overtime.OvertimeService
	accessService   rule.AccessService
}

func NewOverviewHandler(overtimeService overtime.OvertimeService, accessService rule.AccessService) OverviewHandler {
	return &overviewHandlerImpl{
		overtimeService: overtimeService,
		accessService:   accessService,
	}
}

// Summary implements OverviewHandler. With ?user= the caller must be an
// HR reviewer covering that user.
func (h *overviewHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	targetID := r.URL.Query().Get("user")
	if targetID == "" {
		targetID = caller.UserID
	}
	if targetID != caller.UserID {
		ok, err := h.accessService.CanAccessUser(r.Context(), caller.UserID, targetID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !ok {
			response.HandleError(w, userconfig.ErrUnauthorized)
			return
		}
	}

	result, err := h.overtimeService.Summary(r.Context(), targetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HRUsers implements OverviewHandler.
func (h *overviewHandlerImpl) HRUsers(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	users, err := h.accessService.AccessibleUsers(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// HRUserList implements OverviewHandler.
func (h *overviewHandlerImpl) HRUserList(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	rows, err := h.overtimeService.HRUserList(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
