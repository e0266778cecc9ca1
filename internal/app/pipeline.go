package app

import (
	"log"
	"time"

	"github.com/ayusman/signtutor/internal/landmark"
)

// runPipeline is the main capture loop feeding frames to the session.
// It manages the state transitions between idle and active frame rates
// based on motion detection.
//
// Pipeline logic:
// 1. Wait for the session to start, then open the camera
// 2. Start at the idle frame rate
// 3. On motion detected, switch to the active frame rate
// 4. Run hand detection on each frame while active
// 5. Submit the first detected hand to the session (latest-wins)
// 6. After 2s without motion, drop back to the idle frame rate
// 7. Release the camera once the session stops
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(a.config.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Camera acquisition follows the session lifecycle
			if !a.config.Session.Running() {
				if a.camera.IsOpen() {
					if err := a.camera.Close(); err != nil {
						log.Printf("Error closing camera: %v", err)
					}
					a.motion.Reset()
					activeMode = false
					frameInterval = time.Second / time.Duration(a.config.IdleFPS)
					ticker.Reset(frameInterval)
				}
				continue
			}
			if !a.camera.IsOpen() {
				if err := a.camera.Open(); err != nil {
					log.Printf("Error opening camera: %v", err)
					continue
				}
				a.camera.SetFPS(a.config.IdleFPS)
			}

			start := time.Now()

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.config.ActiveFPS)
					frameInterval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(a.config.IdleFPS)
					frameInterval = time.Second / time.Duration(a.config.IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip detection while idle
			if !activeMode {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := a.Provider().Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				if a.config.Metrics != nil {
					a.config.Metrics.FrameNoHand()
				}
				continue
			}

			// Step 3: Submit the first hand for scoring
			points := hands[0].Points
			if a.config.Mirror {
				points = landmark.Mirror(points)
			}
			a.config.Session.Submit(points)

			if a.config.Metrics != nil {
				a.config.Metrics.ObservePipeline(time.Since(start).Seconds())
			}
		}
	}
}
