package pose

import "time"

// Scoring defaults. All of them are tunable through Options.
const (
	// DefaultCalibration is the residual RMS producing a score of 50,
	// in normalized (unit reference segment) coordinates.
	DefaultCalibration = 0.25
	// DefaultHistorySize is the score history capacity.
	DefaultHistorySize = 10
	// DefaultTrendWindow is the number of recent samples compared against
	// the preceding window to derive the trend.
	DefaultTrendWindow = 3
	// DefaultNoiseThreshold is the minimum mean-score difference, in score
	// points, before a trend leaves steady.
	DefaultNoiseThreshold = 2.0
)

// Trend is the short-term direction of the score history.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendSteady    Trend = "steady"
	TrendDeclining Trend = "declining"
)

// Sample is one scored frame.
type Sample struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Trend     Trend     `json:"trend"`
}

// Options configures a Scorer. Zero values select the defaults above.
type Options struct {
	Calibration    float64
	HistorySize    int
	TrendWindow    int
	NoiseThreshold float64
}

// Scorer maps alignment residuals to 0-100 scores and tracks a bounded
// history to derive a trend. One Scorer belongs to one practice session.
type Scorer struct {
	calibration float64
	window      int
	noise       float64
	history     *History
	now         func() time.Time
}

// NewScorer creates a Scorer with the given options.
func NewScorer(opts Options) *Scorer {
	if opts.Calibration <= 0 {
		opts.Calibration = DefaultCalibration
	}
	if opts.TrendWindow <= 0 {
		opts.TrendWindow = DefaultTrendWindow
	}
	if opts.NoiseThreshold <= 0 {
		opts.NoiseThreshold = DefaultNoiseThreshold
	}
	return &Scorer{
		calibration: opts.Calibration,
		window:      opts.TrendWindow,
		noise:       opts.NoiseThreshold,
		history:     NewHistory(opts.HistorySize),
		now:         time.Now,
	}
}

// Score maps a residual RMS to a score in [0,100]. The mapping is
// monotonically decreasing: zero residual scores 100, and the calibration
// constant is the residual scoring 50.
func (s *Scorer) Score(residualRMS float64) float64 {
	if residualRMS <= 0 {
		return 100
	}
	return 100 / (1 + residualRMS/s.calibration)
}

// Evaluate scores a residual RMS, derives the trend from the history plus
// the new score, and appends the resulting sample. Failed frames never
// reach Evaluate, so the history only ever holds valid samples.
func (s *Scorer) Evaluate(residualRMS float64) Sample {
	sample := Sample{
		Score:     s.Score(residualRMS),
		Timestamp: s.now(),
	}
	sample.Trend = s.trendWith(sample.Score)
	s.history.Append(sample)
	return sample
}

// trendWith derives the trend as if score had just been appended: the mean
// of the most recent window samples against the mean of the window samples
// preceding them. Fewer than two full windows yields steady.
func (s *Scorer) trendWith(score float64) Trend {
	prior := s.history.Snapshot()
	scores := make([]float64, 0, len(prior)+1)
	for _, p := range prior {
		scores = append(scores, p.Score)
	}
	scores = append(scores, score)

	k := s.window
	if len(scores) < 2*k {
		return TrendSteady
	}

	recent := mean(scores[len(scores)-k:])
	previous := mean(scores[len(scores)-2*k : len(scores)-k])

	switch {
	case recent > previous+s.noise:
		return TrendImproving
	case recent < previous-s.noise:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

// History returns the scorer's history buffer.
func (s *Scorer) History() *History {
	return s.history
}

// Reset clears the score history.
func (s *Scorer) Reset() {
	s.history.Clear()
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
