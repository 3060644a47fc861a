package handlers

import (
	"net/http"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	BaseHandler
	svc Service
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(svc Service) *SystemHandler {
	return &SystemHandler{
		svc: svc,
	}
}

// GetConfig handles the get config endpoint
func (h *SystemHandler) GetConfig(w http.ResponseWriter, req *http.Request) {
	config := h.svc.GetConfig()
	h.sendSuccess(w, "Config retrieved successfully", config)
}
