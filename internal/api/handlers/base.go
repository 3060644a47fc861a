package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/Project-Sylos/Mimic/sdk"
)

// Service is the part of the SDK the handlers read from
type Service interface {
	GetConfig() *types.Config
	ListRuns() ([]*types.Run, error)
	GetRun(id string) (*types.Run, error)
	DeleteRun(id string) error
	ListFiles(runID string, copyIndex int) ([]types.FileRecord, error)
	GetFile(runID string, copyIndex int, path string) (*types.FileRecord, error)
	GetStats(runID string) (*types.RunStats, error)
}

// BaseHandler provides common functionality for all API handlers
type BaseHandler struct{}

// sendJSON sends a JSON response with the given status code and data
func (h *BaseHandler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response with the given status code and message
func (h *BaseHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, types.APIResponse{
		Success: false,
		Message: message,
	})
}

// sendSuccess sends a success response with the given data
func (h *BaseHandler) sendSuccess(w http.ResponseWriter, message string, data any) {
	h.sendJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// statusFor maps SDK errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, sdk.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sdk.ErrManifestDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
