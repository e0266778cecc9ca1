package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/server"
	"github.com/ayusman/signtutor/internal/session"
	"github.com/ayusman/signtutor/internal/store"
)

func TestE2E_PracticeWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	library := refs.WithBuiltins()
	sess := session.New(session.Config{Library: library})
	defer sess.Stop()

	srv := server.New(server.Config{
		Store:   s,
		Library: library,
		Session: sess,
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	postJSON := func(t *testing.T, path string, payload any) *http.Response {
		t.Helper()
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal error = %v", err)
		}
		resp, err := client.Post(ts.URL+path, "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST %s error = %v", path, err)
		}
		return resp
	}

	t.Run("ListLetters", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/letters")
		if err != nil {
			t.Fatalf("list letters error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var payload struct {
			Letters []string `json:"letters"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(payload.Letters) == 0 {
			t.Fatal("expected builtin letters")
		}
	})

	t.Run("TrainLetter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp := postJSON(t, "/api/letters/A/samples", map[string]any{"points": refs.LetterA()})
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("record sample status = %d, want %d", resp.StatusCode, http.StatusCreated)
			}
			resp.Body.Close()
		}

		resp := postJSON(t, "/api/letters/A/train", nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("train status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		if _, err := s.Letters().Get("A"); err != nil {
			t.Errorf("expected trained letter in store: %v", err)
		}
	})

	t.Run("StartSession", func(t *testing.T) {
		resp := postJSON(t, "/api/session/start", map[string]string{"letter": "A"})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("start status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("ScoreFrames", func(t *testing.T) {
		// Feed the reference pose itself; the history should fill with
		// near-perfect scores.
		for i := 0; i < 3; i++ {
			if _, err := sess.Evaluate(refs.LetterA()); err != nil {
				t.Fatalf("evaluate error = %v", err)
			}
		}

		deadline := time.Now().Add(time.Second)
		var status struct {
			Running bool          `json:"running"`
			History []pose.Sample `json:"history"`
		}
		for time.Now().Before(deadline) {
			resp, err := client.Get(ts.URL + "/api/session")
			if err != nil {
				t.Fatalf("status error = %v", err)
			}
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				resp.Body.Close()
				t.Fatalf("decode error = %v", err)
			}
			resp.Body.Close()
			if len(status.History) >= 3 {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}

		if !status.Running {
			t.Error("expected running session")
		}
		if len(status.History) < 3 {
			t.Fatalf("expected 3 history samples, got %d", len(status.History))
		}
		for _, sample := range status.History {
			if sample.Score < 99.0 {
				t.Errorf("expected near-perfect score, got %.2f", sample.Score)
			}
		}
	})

	t.Run("SwitchLetter", func(t *testing.T) {
		resp := postJSON(t, "/api/session/letter", map[string]string{"letter": "B"})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("switch status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var status struct {
			Letter  string        `json:"letter"`
			History []pose.Sample `json:"history"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if status.Letter != "B" {
			t.Errorf("letter = %q, want B", status.Letter)
		}
		if len(status.History) != 0 {
			t.Errorf("expected cleared history after switch, got %d samples", len(status.History))
		}
	})

	t.Run("StopSession", func(t *testing.T) {
		resp := postJSON(t, "/api/session/stop", nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("stop status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var status struct {
			Running bool `json:"running"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if status.Running {
			t.Error("expected stopped session")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after session operations")
		}
	})
}
