package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RunHandler handles run-related endpoints
type RunHandler struct {
	BaseHandler
	svc Service
}

// NewRunHandler creates a new run handler
func NewRunHandler(svc Service) *RunHandler {
	return &RunHandler{
		svc: svc,
	}
}

// ListRuns handles the list runs endpoint
func (h *RunHandler) ListRuns(w http.ResponseWriter, req *http.Request) {
	runs, err := h.svc.ListRuns()
	if err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to list runs: %v", err))
		return
	}

	h.sendSuccess(w, "Runs retrieved successfully", runs)
}

// GetRun handles the get run endpoint
func (h *RunHandler) GetRun(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "runID")

	run, err := h.svc.GetRun(id)
	if err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to get run: %v", err))
		return
	}

	h.sendSuccess(w, "Run retrieved successfully", run)
}

// GetStats handles the run stats endpoint
func (h *RunHandler) GetStats(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "runID")

	stats, err := h.svc.GetStats(id)
	if err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to get stats: %v", err))
		return
	}

	h.sendSuccess(w, "Stats retrieved successfully", stats)
}

// DeleteRun handles the delete run endpoint
func (h *RunHandler) DeleteRun(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "runID")

	if err := h.svc.DeleteRun(id); err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to delete run: %v", err))
		return
	}

	h.sendSuccess(w, "Run deleted successfully", nil)
}
