package refs

import (
	"fmt"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/pose"
)

// Trainer averages recorded landmark samples into a canonical letter pose.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Train averages multiple recorded landmark sets into a single canonical
// set suitable for the reference library. All samples must hold exactly
// landmark.NumLandmarks points, and the averaged pose must survive
// normalization (a collapsed average is rejected).
func (t *Trainer) Train(samples []landmark.Set) (landmark.Set, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}

	for i, s := range samples {
		if len(s) != landmark.NumLandmarks {
			return nil, fmt.Errorf("sample %d has %d landmarks, expected %d", i, len(s), landmark.NumLandmarks)
		}
	}

	averaged := make(landmark.Set, landmark.NumLandmarks)
	n := float64(len(samples))

	for i := 0; i < landmark.NumLandmarks; i++ {
		var sumX, sumY float64
		for _, s := range samples {
			sumX += s[i].X
			sumY += s[i].Y
		}
		averaged[i] = landmark.Point2D{X: sumX / n, Y: sumY / n}
	}

	// Reject averages the scoring pipeline could never use
	if _, err := pose.Normalize(averaged); err != nil {
		return nil, fmt.Errorf("averaged pose unusable: %w", err)
	}

	return averaged, nil
}
