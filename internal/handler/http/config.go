package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

type ConfigHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	GetOwn(w http.ResponseWriter, r *http.Request)
	UpdateOwn(w http.ResponseWriter, r *http.Request)
}

type configHandlerImpl struct {
	configService userconfig.UserConfigService
}

func NewConfigHandler(configService userconfig.UserConfigService) ConfigHandler {
	return &configHandlerImpl{
		configService: configService,
	}
}

// Get implements ConfigHandler.
func (h *configHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	result, err := h.configService.GetConfig(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ConfigHandler.
func (h *configHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	var req userconfig.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.configService.UpdateConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Config updated", result)
}

// GetOwn implements ConfigHandler. Serves the caller's own config for
// the notification and warning settings pages.
func (h *configHandlerImpl) GetOwn(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	result, err := h.configService.GetConfig(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOwn implements ConfigHandler.
func (h *configHandlerImpl) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req userconfig.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = caller.UserID

	result, err := h.configService.UpdateConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Config updated", result)
}
