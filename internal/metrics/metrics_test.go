package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestManager_ScrapeOutput(t *testing.T) {
	m := NewManager()

	m.FrameScored(87.5)
	m.ObservePipeline(0.002)
	m.FrameNoHand()
	m.FrameFailed("degenerate_input")

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	out := string(body)

	for _, want := range []string{
		"signtutor_frames_scored_total 1",
		"signtutor_frames_no_hand_total 1",
		`signtutor_frames_failed_total{kind="degenerate_input"} 1`,
		"signtutor_last_score 87.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}
