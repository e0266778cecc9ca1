// Package pose implements the landmark alignment and scoring engine:
// geometric normalization, closed-form rigid alignment, residual-to-score
// mapping and bounded score history with trend tracking.
package pose

import (
	"fmt"

	"github.com/ayusman/signtutor/internal/landmark"
)

// SegmentEpsilon is the minimum reference segment length accepted by
// Normalize. Below this the set is considered collapsed.
const SegmentEpsilon = 1e-6

// Reference segment endpoints used for scale normalization. The wrist to
// middle-finger MCP distance is stable across finger poses, which makes it
// a safe scale anchor for letters that curl the fingertips.
const (
	segmentStart = landmark.Wrist
	segmentEnd   = landmark.MiddleMCP
)

// Normalize removes translation and scale variance from a landmark set:
// the centroid is moved to the origin and the set is scaled so the
// reference segment has length 1. The input is not modified.
//
// Returns ErrCardinality if the set does not hold exactly
// landmark.NumLandmarks points, and ErrDegenerateInput if the reference
// segment is shorter than SegmentEpsilon.
func Normalize(s landmark.Set) (landmark.Set, error) {
	if len(s) != landmark.NumLandmarks {
		return nil, fmt.Errorf("%w: got %d points, want %d", ErrCardinality, len(s), landmark.NumLandmarks)
	}

	// Centroid of all points
	var cx, cy float64
	for _, p := range s {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(s))
	cy /= float64(len(s))

	out := make(landmark.Set, len(s))
	for i, p := range s {
		out[i] = landmark.Point2D{X: p.X - cx, Y: p.Y - cy}
	}

	// Scale so the reference segment has unit length. Translation does not
	// change the segment length, so measure it on the translated set.
	scale := landmark.Distance(out[segmentStart], out[segmentEnd])
	if scale < SegmentEpsilon {
		return nil, fmt.Errorf("%w: segment length %g", ErrDegenerateInput, scale)
	}

	for i := range out {
		out[i].X /= scale
		out[i].Y /= scale
	}

	return out, nil
}
