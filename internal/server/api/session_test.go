package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/session"
)

func newTestSession() *session.Session {
	return session.New(session.Config{Library: refs.WithBuiltins()})
}

func letterBody(t *testing.T, letter string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{"letter": letter})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) sessionStatusResponse {
	t.Helper()
	var response sessionStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestSessionHandler_StartStop(t *testing.T) {
	sess := newTestSession()
	defer sess.Stop()
	handler := NewSessionHandler(sess, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "A"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	status := decodeStatus(t, rec)
	if !status.Running {
		t.Error("expected session running after start")
	}
	if status.Letter != "A" {
		t.Errorf("expected letter A, got %q", status.Letter)
	}
	if status.ID == "" {
		t.Error("expected session id after start")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/session/stop", nil)
	rec = httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	status = decodeStatus(t, rec)
	if status.Running {
		t.Error("expected session stopped after stop")
	}
}

func TestSessionHandler_StartConflicts(t *testing.T) {
	sess := newTestSession()
	defer sess.Stop()
	handler := NewSessionHandler(sess, nil)

	t.Run("unknown letter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "Z"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("malformed letter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "abc"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("already running", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "A"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed to start session: %d", rec.Code)
		}

		req = httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "B"))
		rec = httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
		}
	})
}

func TestSessionHandler_SetLetter(t *testing.T) {
	sess := newTestSession()
	defer sess.Stop()
	handler := NewSessionHandler(sess, nil)

	t.Run("without a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session/letter", letterBody(t, "B"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
		}
	})

	t.Run("switches a running session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "A"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed to start session: %d", rec.Code)
		}

		req = httptest.NewRequest(http.MethodPost, "/api/session/letter", letterBody(t, "B"))
		rec = httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		status := decodeStatus(t, rec)
		if status.Letter != "B" {
			t.Errorf("expected letter B, got %q", status.Letter)
		}
	})
}

func TestSessionHandler_RemembersLastLetter(t *testing.T) {
	s := newTestStore(t)
	sess := newTestSession()
	defer sess.Stop()
	handler := NewSessionHandler(sess, s)

	req := httptest.NewRequest(http.MethodPost, "/api/session/start", letterBody(t, "A"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to start session: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/session/letter", letterBody(t, "B"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to switch letter: %d", rec.Code)
	}

	sess.Stop()

	// The last practiced letter survives the session
	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	status := decodeStatus(t, rec)
	if status.Running {
		t.Error("expected stopped session")
	}
	if status.LastLetter != "B" {
		t.Errorf("last letter = %q, want B", status.LastLetter)
	}

	// And it is readable by a fresh handler over the same store
	fresh := NewSessionHandler(newTestSession(), s)
	rec = httptest.NewRecorder()
	fresh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if got := decodeStatus(t, rec).LastLetter; got != "B" {
		t.Errorf("persisted last letter = %q, want B", got)
	}
}

func TestSessionHandler_Status(t *testing.T) {
	sess := newTestSession()
	handler := NewSessionHandler(sess, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	status := decodeStatus(t, rec)
	if status.Running {
		t.Error("expected idle session")
	}
	if len(status.History) != 0 {
		t.Errorf("expected empty history, got %d samples", len(status.History))
	}
}
