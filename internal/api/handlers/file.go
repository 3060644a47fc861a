package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// FileHandler handles endpoints over the files of one copy
type FileHandler struct {
	BaseHandler
	svc Service
}

// NewFileHandler creates a new file handler
func NewFileHandler(svc Service) *FileHandler {
	return &FileHandler{
		svc: svc,
	}
}

// ListFiles handles the list files endpoint
func (h *FileHandler) ListFiles(w http.ResponseWriter, req *http.Request) {
	runID := chi.URLParam(req, "runID")
	index, ok := h.copyIndex(w, req)
	if !ok {
		return
	}

	files, err := h.svc.ListFiles(runID, index)
	if err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to list files: %v", err))
		return
	}

	h.sendSuccess(w, "Files retrieved successfully", files)
}

// GetFile handles the get file endpoint; the file path is the wildcard suffix
func (h *FileHandler) GetFile(w http.ResponseWriter, req *http.Request) {
	runID := chi.URLParam(req, "runID")
	index, ok := h.copyIndex(w, req)
	if !ok {
		return
	}

	path := chi.URLParam(req, "*")
	if path == "" {
		h.sendError(w, http.StatusBadRequest, "file path is required")
		return
	}

	file, err := h.svc.GetFile(runID, index, path)
	if err != nil {
		h.sendError(w, statusFor(err), fmt.Sprintf("Failed to get file: %v", err))
		return
	}

	h.sendSuccess(w, "File retrieved successfully", file)
}

func (h *FileHandler) copyIndex(w http.ResponseWriter, req *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(req, "index"))
	if err != nil || index < 0 {
		h.sendError(w, http.StatusBadRequest, "copy index must be a non-negative integer")
		return 0, false
	}
	return index, true
}
