// Package landmark defines hand landmark types and the provider interface
// that supplies per-frame landmark sets to the scoring pipeline.
package landmark

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point2D is a point in the shared camera-space convention. Live and
// reference sets must use the same convention (MediaPipe emits coordinates
// normalized to the unit square).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Set is an ordered sequence of hand landmarks. Index i refers to the same
// anatomical point in any two sets being compared. A set entering the
// scoring pipeline must hold exactly NumLandmarks points.
type Set []Point2D

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point2D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Hand is one detected hand: its landmark set plus detection metadata.
type Hand struct {
	Points     Set     `json:"points"`
	Handedness string  `json:"handedness"` // "Left" or "Right"
	Score      float64 `json:"score"`
}

// Mirror flips a set horizontally in unit-square coordinates. Callers use
// it to un-mirror provider output when the camera feed is mirrored, so the
// engine always compares sets in the reference orientation.
func Mirror(s Set) Set {
	out := make(Set, len(s))
	for i, p := range s {
		out[i] = Point2D{X: 1 - p.X, Y: p.Y}
	}
	return out
}
