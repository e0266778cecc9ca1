package pose

import (
	"fmt"
	"math"

	"github.com/ayusman/signtutor/internal/landmark"
)

// Alignment is the result of fitting a rotation that superimposes a live
// set onto a reference set.
type Alignment struct {
	// Theta is the rotation angle in radians applied to the live set.
	Theta float64
	// Residuals holds the per-point distance to the reference after rotation.
	Residuals []float64
	// RMS is the root mean square of Residuals.
	RMS float64
}

// Align finds the proper rotation (no reflection) minimizing the sum of
// squared distances between corresponding points of two normalized sets,
// applies it to the live set, and reports per-point residuals and their RMS.
//
// Both inputs must already be centered and scale-normalized; only rotation
// remains to be resolved. Mirrored input is not auto-corrected; callers
// must supply landmarks in the reference orientation.
func Align(live, reference landmark.Set) (Alignment, error) {
	if len(live) != landmark.NumLandmarks || len(reference) != landmark.NumLandmarks {
		return Alignment{}, fmt.Errorf("%w: live %d, reference %d points", ErrCardinality, len(live), len(reference))
	}

	// Closed-form 2-D rotation fit:
	// theta = atan2(sum(x*y' - y*x'), sum(x*x' + y*y'))
	var cross, dot float64
	for i := range live {
		cross += live[i].X*reference[i].Y - live[i].Y*reference[i].X
		dot += live[i].X*reference[i].X + live[i].Y*reference[i].Y
	}
	theta := math.Atan2(cross, dot)

	sin, cos := math.Sincos(theta)

	result := Alignment{
		Theta:     theta,
		Residuals: make([]float64, len(live)),
	}

	var sumSq float64
	for i, p := range live {
		rotated := landmark.Point2D{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
		}
		r := landmark.Distance(rotated, reference[i])
		result.Residuals[i] = r
		sumSq += r * r
	}
	result.RMS = math.Sqrt(sumSq / float64(len(live)))

	return result, nil
}

// Rotate applies a rotation of theta radians around the origin to a set.
// Exposed for tests and for building synthetic reference poses.
func Rotate(s landmark.Set, theta float64) landmark.Set {
	sin, cos := math.Sincos(theta)
	out := make(landmark.Set, len(s))
	for i, p := range s {
		out[i] = landmark.Point2D{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
		}
	}
	return out
}
