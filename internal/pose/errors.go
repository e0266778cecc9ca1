package pose

import "errors"

// ErrCardinality is returned when a landmark set does not contain exactly
// landmark.NumLandmarks points. This is a hard input error: the frame is
// rejected before any geometry runs.
var ErrCardinality = errors.New("landmark set has wrong cardinality")

// ErrDegenerateInput is returned when the reference segment of a landmark
// set is shorter than SegmentEpsilon, meaning the points have collapsed and
// no scale can be recovered. No score can be computed for such a frame.
var ErrDegenerateInput = errors.New("degenerate landmark set: reference segment collapsed")
