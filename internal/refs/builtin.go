package refs

import "github.com/ayusman/signtutor/internal/landmark"

// Built-in canonical poses for a starter set of letters, in unit-square
// camera coordinates with the wrist near the bottom of the frame. These are
// hand-tuned approximations of the fingerspelling poses, good enough to
// practice against until a user trains their own references.

func builtinLetters() map[string]landmark.Set {
	return map[string]landmark.Set{
		"A": LetterA(),
		"B": LetterB(),
		"C": LetterC(),
		"L": LetterL(),
		"V": LetterV(),
		"Y": LetterY(),
	}
}

// LetterA is a closed fist with the thumb resting against the side.
func LetterA() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb upright along the side of the fist
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.57, Y: 0.78}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.60, Y: 0.70}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.61, Y: 0.62}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.61, Y: 0.55}

	// Fingers curled, tips folded down near the knuckles
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.56, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.56, Y: 0.54}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.55, Y: 0.59}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.55, Y: 0.64}

	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.59}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.51, Y: 0.52}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.50, Y: 0.58}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.50, Y: 0.64}

	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.60}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.46, Y: 0.53}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.45, Y: 0.59}
	s[landmark.RingTip] = landmark.Point2D{X: 0.45, Y: 0.64}

	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.41, Y: 0.62}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.41, Y: 0.56}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.40, Y: 0.61}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.40, Y: 0.66}

	return s
}

// LetterB is a flat palm with fingers extended together and the thumb
// folded across the palm.
func LetterB() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb folded across the palm
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.56, Y: 0.77}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.55, Y: 0.70}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.51, Y: 0.66}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.47, Y: 0.64}

	// All four fingers straight up, close together
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.55, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.56, Y: 0.48}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.56, Y: 0.40}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.56, Y: 0.32}

	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.58}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.51, Y: 0.45}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.51, Y: 0.36}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.51, Y: 0.27}

	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.59}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.46, Y: 0.47}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.45, Y: 0.38}
	s[landmark.RingTip] = landmark.Point2D{X: 0.45, Y: 0.30}

	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.42, Y: 0.61}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.41, Y: 0.51}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.40, Y: 0.44}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.40, Y: 0.37}

	return s
}

// LetterC curves thumb and fingers into an open C shape.
func LetterC() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb forming the lower arc
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.57, Y: 0.77}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.62, Y: 0.70}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.64, Y: 0.63}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.63, Y: 0.57}

	// Fingers curved over the top arc
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.55, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.59, Y: 0.52}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.62, Y: 0.47}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.64, Y: 0.44}

	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.58}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.55, Y: 0.49}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.59, Y: 0.44}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.62, Y: 0.41}

	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.59}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.50, Y: 0.50}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.54, Y: 0.46}
	s[landmark.RingTip] = landmark.Point2D{X: 0.57, Y: 0.43}

	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.42, Y: 0.61}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.45, Y: 0.54}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.48, Y: 0.50}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.51, Y: 0.47}

	return s
}

// LetterL extends index finger up and thumb out, other fingers curled.
func LetterL() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb extended sideways
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.57, Y: 0.77}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.64, Y: 0.72}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.70, Y: 0.69}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.76, Y: 0.67}

	// Index finger straight up
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.55, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.56, Y: 0.48}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.56, Y: 0.40}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.57, Y: 0.32}

	// Remaining fingers curled against the palm
	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.59}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.51, Y: 0.52}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.50, Y: 0.58}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.50, Y: 0.64}

	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.60}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.46, Y: 0.53}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.45, Y: 0.59}
	s[landmark.RingTip] = landmark.Point2D{X: 0.45, Y: 0.64}

	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.41, Y: 0.62}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.41, Y: 0.56}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.40, Y: 0.61}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.40, Y: 0.66}

	return s
}

// LetterV spreads index and middle fingers up, other fingers curled.
func LetterV() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb folded over the curled fingers
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.56, Y: 0.77}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.55, Y: 0.70}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.50, Y: 0.67}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.46, Y: 0.65}

	// Index angled left-of-vertical
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.55, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.58, Y: 0.49}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.60, Y: 0.41}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.62, Y: 0.33}

	// Middle angled right-of-vertical
	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.58}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.49, Y: 0.46}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.47, Y: 0.38}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.45, Y: 0.30}

	// Ring and pinky curled
	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.60}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.46, Y: 0.53}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.45, Y: 0.59}
	s[landmark.RingTip] = landmark.Point2D{X: 0.45, Y: 0.64}

	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.41, Y: 0.62}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.41, Y: 0.56}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.40, Y: 0.61}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.40, Y: 0.66}

	return s
}

// LetterY extends thumb and pinky, other fingers curled.
func LetterY() landmark.Set {
	s := make(landmark.Set, landmark.NumLandmarks)

	s[landmark.Wrist] = landmark.Point2D{X: 0.50, Y: 0.85}

	// Thumb extended sideways
	s[landmark.ThumbCMC] = landmark.Point2D{X: 0.57, Y: 0.77}
	s[landmark.ThumbMCP] = landmark.Point2D{X: 0.64, Y: 0.72}
	s[landmark.ThumbIP] = landmark.Point2D{X: 0.70, Y: 0.68}
	s[landmark.ThumbTip] = landmark.Point2D{X: 0.76, Y: 0.65}

	// Index, middle, ring curled
	s[landmark.IndexMCP] = landmark.Point2D{X: 0.55, Y: 0.60}
	s[landmark.IndexPIP] = landmark.Point2D{X: 0.55, Y: 0.54}
	s[landmark.IndexDIP] = landmark.Point2D{X: 0.54, Y: 0.59}
	s[landmark.IndexTip] = landmark.Point2D{X: 0.54, Y: 0.64}

	s[landmark.MiddleMCP] = landmark.Point2D{X: 0.51, Y: 0.59}
	s[landmark.MiddlePIP] = landmark.Point2D{X: 0.51, Y: 0.52}
	s[landmark.MiddleDIP] = landmark.Point2D{X: 0.50, Y: 0.58}
	s[landmark.MiddleTip] = landmark.Point2D{X: 0.50, Y: 0.64}

	s[landmark.RingMCP] = landmark.Point2D{X: 0.46, Y: 0.60}
	s[landmark.RingPIP] = landmark.Point2D{X: 0.46, Y: 0.53}
	s[landmark.RingDIP] = landmark.Point2D{X: 0.45, Y: 0.59}
	s[landmark.RingTip] = landmark.Point2D{X: 0.45, Y: 0.64}

	// Pinky extended away from the thumb
	s[landmark.PinkyMCP] = landmark.Point2D{X: 0.41, Y: 0.62}
	s[landmark.PinkyPIP] = landmark.Point2D{X: 0.37, Y: 0.55}
	s[landmark.PinkyDIP] = landmark.Point2D{X: 0.34, Y: 0.50}
	s[landmark.PinkyTip] = landmark.Point2D{X: 0.31, Y: 0.45}

	return s
}
