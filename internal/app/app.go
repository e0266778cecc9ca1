// Package app runs the capture pipeline that feeds the practice session:
// camera frames are motion-gated, run through hand detection and submitted
// to the session for scoring.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/signtutor/internal/capture"
	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/metrics"
	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/session"
)

// IdleTimeoutMs is the time in milliseconds without motion before the
// pipeline drops back to the idle frame rate.
const IdleTimeoutMs = 2000

// Config holds configuration options for the application.
type Config struct {
	Session      *session.Session
	Metrics      *metrics.Manager
	CameraID     int
	ActiveFPS    int
	IdleFPS      int
	MotionThresh float64
	Mirror       bool
}

// App owns the camera and the frame pipeline. The camera is acquired when
// the practice session is running and released when it is not, so the
// device stays free outside practice.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	provider landmark.Provider
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // Default threshold: 1% pixel change
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = capture.DefaultFPS
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = capture.IdleFPS
	}

	a := &App{
		config: config,
		camera: capture.NewCamera(config.CameraID),
		motion: capture.NewMotionDetector(config.MotionThresh),
	}

	// Try MediaPipe first, fall back to mock provider
	if mp, err := landmark.NewMediaPipeProvider(landmark.DefaultConfig()); err == nil {
		a.provider = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock provider", err)
		a.provider = landmark.NewMockProvider()
	}

	return a
}

// SetProvider sets the landmark provider implementation to use.
func (a *App) SetProvider(p landmark.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// Provider returns the landmark provider.
func (a *App) Provider() landmark.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Start begins the frame pipeline. The camera itself is opened lazily once
// the session starts running.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Capture pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.camera.IsOpen() {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}

	a.motion.Close()

	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			log.Printf("Error closing landmark provider: %v", err)
		}
	}

	log.Println("Capture pipeline stopped")
}

// MetricsPresenter records scoring outcomes as Prometheus metrics. It sits
// alongside the other presenters in the session fanout.
type MetricsPresenter struct {
	Manager *metrics.Manager
}

// Present records a scored frame.
func (p MetricsPresenter) Present(sample pose.Sample) {
	p.Manager.FrameScored(sample.Score)
}

// PresentFailure records a skipped frame by failure kind.
func (p MetricsPresenter) PresentFailure(failure session.Failure) {
	p.Manager.FrameFailed(string(failure))
}
