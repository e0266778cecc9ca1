package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/session"
	"github.com/ayusman/signtutor/internal/store"
)

// lastLetterKey is the settings key holding the most recently practiced
// letter, so the UI can preselect it across restarts.
const lastLetterKey = "last_letter"

// SessionHandler controls the single practice session.
type SessionHandler struct {
	session *session.Session
	store   *store.Store
}

// NewSessionHandler creates a new SessionHandler. A nil store disables
// last-letter persistence.
func NewSessionHandler(s *session.Session, st *store.Store) *SessionHandler {
	return &SessionHandler{session: s, store: st}
}

// ServeHTTP routes session requests.
// Expected paths:
//
//	GET  /api/session         - current status and score history
//	POST /api/session/start   - start practising a letter
//	POST /api/session/stop    - stop the session
//	POST /api/session/letter  - switch the target letter mid-session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/session")
	action = strings.TrimPrefix(action, "/")

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.status(w, r)
	case action == "start" && r.Method == http.MethodPost:
		h.start(w, r)
	case action == "stop" && r.Method == http.MethodPost:
		h.stop(w, r)
	case action == "letter" && r.Method == http.MethodPost:
		h.setLetter(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type sessionRequest struct {
	Letter string `json:"letter"`
}

type sessionStatusResponse struct {
	Running    bool          `json:"running"`
	ID         string        `json:"id,omitempty"`
	Letter     string        `json:"letter,omitempty"`
	LastLetter string        `json:"last_letter,omitempty"`
	History    []pose.Sample `json:"history"`
}

// status handles GET /api/session.
func (h *SessionHandler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionStatusResponse{
		Running:    h.session.Running(),
		ID:         h.session.ID(),
		Letter:     h.session.Letter(),
		LastLetter: h.lastLetter(),
		History:    h.session.History(),
	})
}

// lastLetter reads the persisted last practiced letter, empty when
// nothing was practiced yet or no store is configured.
func (h *SessionHandler) lastLetter() string {
	if h.store == nil {
		return ""
	}
	letter, err := h.store.GetSetting(lastLetterKey)
	if err != nil {
		return ""
	}
	return letter
}

// rememberLetter persists the letter as the most recently practiced one.
func (h *SessionHandler) rememberLetter(letter string) {
	if h.store == nil {
		return
	}
	if err := h.store.SetSetting(lastLetterKey, letter); err != nil {
		log.Printf("Failed to persist last letter: %v", err)
	}
}

// start handles POST /api/session/start.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	letter, ok := h.decodeLetter(w, r)
	if !ok {
		return
	}

	if err := h.session.Start(letter); err != nil {
		switch {
		case errors.Is(err, session.ErrAlreadyRunning):
			writeError(w, http.StatusConflict, "A session is already running")
		case errors.Is(err, refs.ErrNoReferenceData):
			writeError(w, http.StatusNotFound, "No reference data for letter")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to start session")
		}
		return
	}
	h.rememberLetter(letter)
	h.status(w, r)
}

// stop handles POST /api/session/stop.
func (h *SessionHandler) stop(w http.ResponseWriter, r *http.Request) {
	h.session.Stop()
	h.status(w, r)
}

// setLetter handles POST /api/session/letter.
func (h *SessionHandler) setLetter(w http.ResponseWriter, r *http.Request) {
	letter, ok := h.decodeLetter(w, r)
	if !ok {
		return
	}

	if err := h.session.SetLetter(letter); err != nil {
		switch {
		case errors.Is(err, session.ErrNotRunning):
			writeError(w, http.StatusConflict, "No session is running")
		case errors.Is(err, refs.ErrNoReferenceData):
			writeError(w, http.StatusNotFound, "No reference data for letter")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to switch letter")
		}
		return
	}
	h.rememberLetter(letter)
	h.status(w, r)
}

func (h *SessionHandler) decodeLetter(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return "", false
	}
	if !refs.ValidLetter(req.Letter) {
		writeError(w, http.StatusBadRequest, "Letter must be a single uppercase character")
		return "", false
	}
	return req.Letter, true
}
