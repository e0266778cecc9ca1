// Package api provides HTTP API handlers for the signtutor practice server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/store"
)

// LettersHandler handles HTTP requests for reference letter resources.
// Writes go to both the store and the in-memory library so a running
// session sees new references immediately.
type LettersHandler struct {
	store   *store.Store
	library *refs.Library
}

// NewLettersHandler creates a new LettersHandler.
func NewLettersHandler(s *store.Store, lib *refs.Library) *LettersHandler {
	return &LettersHandler{store: s, library: lib}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/letters and /api/letters/{L}
func (h *LettersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/letters")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	letter := path
	if !refs.ValidLetter(letter) {
		writeError(w, http.StatusBadRequest, "Letter must be a single uppercase character")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, letter)
	case http.MethodPut:
		h.put(w, r, letter)
	case http.MethodDelete:
		h.delete(w, r, letter)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type putLetterRequest struct {
	Points landmark.Set `json:"points"`
}

type letterResponse struct {
	Letter string       `json:"letter"`
	Points landmark.Set `json:"points,omitempty"`
}

type listLettersResponse struct {
	Letters []string `json:"letters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/letters.
func (h *LettersHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listLettersResponse{Letters: h.library.Letters()})
}

// get handles GET /api/letters/{L}.
func (h *LettersHandler) get(w http.ResponseWriter, r *http.Request, letter string) {
	set, err := h.library.Lookup(letter)
	if err != nil {
		if errors.Is(err, refs.ErrNoReferenceData) {
			writeError(w, http.StatusNotFound, "No reference data for letter")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to look up letter")
		return
	}

	writeJSON(w, http.StatusOK, letterResponse{Letter: letter, Points: set})
}

// put handles PUT /api/letters/{L}: stores a canonical pose.
func (h *LettersHandler) put(w http.ResponseWriter, r *http.Request, letter string) {
	var req putLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Points) != landmark.NumLandmarks {
		writeError(w, http.StatusBadRequest, "Expected exactly 21 landmark points")
		return
	}

	if h.store != nil {
		if err := h.store.Letters().Upsert(letter, req.Points); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store letter")
			return
		}
	}
	if err := h.library.Put(letter, req.Points); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, letterResponse{Letter: letter})
}

// delete handles DELETE /api/letters/{L}.
func (h *LettersHandler) delete(w http.ResponseWriter, r *http.Request, letter string) {
	if h.store != nil {
		if err := h.store.Letters().Delete(letter); err != nil && !errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "Failed to delete letter")
			return
		}
	}
	h.library.Remove(letter)

	writeJSON(w, http.StatusNoContent, nil)
}
