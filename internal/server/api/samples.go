package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/store"
)

// SamplesHandler manages training samples for reference letters.
// Samples are recorded per letter and averaged into a canonical
// reference pose when training is triggered.
type SamplesHandler struct {
	store   *store.Store
	library *refs.Library
	trainer *refs.Trainer
}

// NewSamplesHandler creates a new SamplesHandler.
func NewSamplesHandler(s *store.Store, lib *refs.Library) *SamplesHandler {
	return &SamplesHandler{store: s, library: lib, trainer: refs.NewTrainer()}
}

// ServeHTTP routes sample requests.
// Expected paths:
//
//	POST   /api/letters/{L}/samples  - record a sample
//	GET    /api/letters/{L}/samples  - list samples
//	DELETE /api/letters/{L}/samples  - discard samples
//	POST   /api/letters/{L}/train    - average samples into a reference
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/letters/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	letter, action := parts[0], parts[1]
	if !refs.ValidLetter(letter) {
		writeError(w, http.StatusBadRequest, "Letter must be a single uppercase character")
		return
	}

	switch {
	case action == "samples" && r.Method == http.MethodPost:
		h.record(w, r, letter)
	case action == "samples" && r.Method == http.MethodGet:
		h.list(w, r, letter)
	case action == "samples" && r.Method == http.MethodDelete:
		h.discard(w, r, letter)
	case action == "train" && r.Method == http.MethodPost:
		h.train(w, r, letter)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type recordSampleRequest struct {
	Points landmark.Set `json:"points"`
}

type samplesResponse struct {
	Letter  string `json:"letter"`
	Samples int    `json:"samples"`
}

type listSamplesResponse struct {
	Letter  string         `json:"letter"`
	Samples []landmark.Set `json:"samples"`
}

// record handles POST /api/letters/{L}/samples.
func (h *SamplesHandler) record(w http.ResponseWriter, r *http.Request, letter string) {
	var req recordSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Points) != landmark.NumLandmarks {
		writeError(w, http.StatusBadRequest, "Expected exactly 21 landmark points")
		return
	}
	if _, err := pose.Normalize(req.Points); err != nil {
		writeError(w, http.StatusBadRequest, "Sample pose is degenerate")
		return
	}

	if _, err := h.store.Letters().AddSample(letter, req.Points); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record sample")
		return
	}

	samples, err := h.store.Letters().ListSamples(letter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count samples")
		return
	}
	writeJSON(w, http.StatusCreated, samplesResponse{Letter: letter, Samples: len(samples)})
}

// list handles GET /api/letters/{L}/samples.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, letter string) {
	samples, err := h.store.Letters().ListSamples(letter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}
	writeJSON(w, http.StatusOK, listSamplesResponse{Letter: letter, Samples: samples})
}

// discard handles DELETE /api/letters/{L}/samples.
func (h *SamplesHandler) discard(w http.ResponseWriter, r *http.Request, letter string) {
	if err := h.store.Letters().ClearSamples(letter, 0); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to discard samples")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// train handles POST /api/letters/{L}/train: averages the recorded
// samples into the canonical reference for the letter.
func (h *SamplesHandler) train(w http.ResponseWriter, r *http.Request, letter string) {
	samples, err := h.store.Letters().ListSamples(letter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load samples")
		return
	}
	if len(samples) == 0 {
		writeError(w, http.StatusBadRequest, "No samples recorded for letter")
		return
	}

	averaged, err := h.trainer.Train(samples)
	if err != nil {
		if errors.Is(err, pose.ErrDegenerateInput) || errors.Is(err, pose.ErrCardinality) {
			writeError(w, http.StatusBadRequest, "Samples do not form a usable pose")
			return
		}
		writeError(w, http.StatusInternalServerError, "Training failed")
		return
	}

	if err := h.store.Letters().Upsert(letter, averaged); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store trained letter")
		return
	}
	if err := h.store.Letters().ClearSamples(letter, len(samples)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear samples")
		return
	}
	if err := h.library.Put(letter, averaged); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, samplesResponse{Letter: letter, Samples: len(samples)})
}
