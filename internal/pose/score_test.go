package pose

import (
	"testing"
	"time"
)

func TestScorer_ZeroResidualScores100(t *testing.T) {
	s := NewScorer(Options{})

	if got := s.Score(0); got != 100 {
		t.Errorf("Score(0) = %g, want 100", got)
	}
}

func TestScorer_CalibrationScores50(t *testing.T) {
	s := NewScorer(Options{Calibration: 0.3})

	if got := s.Score(0.3); got < 49.999 || got > 50.001 {
		t.Errorf("Score(calibration) = %g, want 50", got)
	}
}

func TestScorer_MonotonicallyNonIncreasing(t *testing.T) {
	s := NewScorer(Options{})

	prev := s.Score(0)
	for rms := 0.01; rms < 5.0; rms += 0.01 {
		got := s.Score(rms)
		if got > prev {
			t.Fatalf("Score(%g) = %g > Score of smaller residual %g", rms, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("Score(%g) = %g, out of [0,100]", rms, got)
		}
		prev = got
	}
}

func TestHistory_CapacityAndFIFOEviction(t *testing.T) {
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Append(Sample{Score: float64(i)})
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	snapshot := h.Snapshot()
	want := []float64{2, 3, 4}
	for i, s := range snapshot {
		if s.Score != want[i] {
			t.Errorf("snapshot[%d].Score = %g, want %g", i, s.Score, want[i])
		}
	}
}

func TestHistory_SnapshotIsACopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(Sample{Score: 10})

	snapshot := h.Snapshot()
	snapshot[0].Score = 99

	if got := h.Snapshot()[0].Score; got != 10 {
		t.Errorf("history mutated through snapshot: Score = %g, want 10", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(3)
	h.Append(Sample{Score: 10})
	h.Append(Sample{Score: 20})

	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
}

func TestScorer_TrendSteadyWithFewSamples(t *testing.T) {
	s := NewScorer(Options{TrendWindow: 3})

	// Fewer than 2k samples always reports steady
	for i := 0; i < 5; i++ {
		sample := s.Evaluate(0.1)
		if sample.Trend != TrendSteady {
			t.Errorf("sample %d: Trend = %q, want steady", i, sample.Trend)
		}
	}
}

func TestScorer_TrendSteadyForIdenticalFrames(t *testing.T) {
	s := NewScorer(Options{TrendWindow: 3})

	var last Sample
	for i := 0; i < 10; i++ {
		last = s.Evaluate(0.2)
	}

	if last.Trend != TrendSteady {
		t.Errorf("Trend = %q, want steady for identical frames", last.Trend)
	}
}

func TestScorer_TrendImproving(t *testing.T) {
	s := NewScorer(Options{TrendWindow: 3})

	// Residuals shrinking fast enough to clear the noise threshold
	residuals := []float64{1.0, 1.0, 1.0, 0.1, 0.1, 0.1}
	var last Sample
	for _, r := range residuals {
		last = s.Evaluate(r)
	}

	if last.Trend != TrendImproving {
		t.Errorf("Trend = %q, want improving", last.Trend)
	}
}

func TestScorer_TrendDeclining(t *testing.T) {
	s := NewScorer(Options{TrendWindow: 3})

	residuals := []float64{0.1, 0.1, 0.1, 1.0, 1.0, 1.0}
	var last Sample
	for _, r := range residuals {
		last = s.Evaluate(r)
	}

	if last.Trend != TrendDeclining {
		t.Errorf("Trend = %q, want declining", last.Trend)
	}
}

func TestScorer_SmallWobbleStaysSteady(t *testing.T) {
	s := NewScorer(Options{TrendWindow: 3, NoiseThreshold: 5.0})

	// Scores wobble by less than the noise threshold
	residuals := []float64{0.250, 0.252, 0.249, 0.251, 0.248, 0.250}
	var last Sample
	for _, r := range residuals {
		last = s.Evaluate(r)
	}

	if last.Trend != TrendSteady {
		t.Errorf("Trend = %q, want steady for sub-threshold wobble", last.Trend)
	}
}

func TestScorer_EvaluateRecordsSample(t *testing.T) {
	s := NewScorer(Options{HistorySize: 4})

	before := time.Now()
	sample := s.Evaluate(0.25)
	after := time.Now()

	if s.History().Len() != 1 {
		t.Fatalf("history Len() = %d, want 1", s.History().Len())
	}
	if sample.Timestamp.Before(before) || sample.Timestamp.After(after) {
		t.Errorf("Timestamp %v outside [%v, %v]", sample.Timestamp, before, after)
	}
}

func TestScorer_Reset(t *testing.T) {
	s := NewScorer(Options{})
	s.Evaluate(0.1)
	s.Evaluate(0.2)

	s.Reset()

	if s.History().Len() != 0 {
		t.Errorf("history Len() after Reset = %d, want 0", s.History().Len())
	}
}
