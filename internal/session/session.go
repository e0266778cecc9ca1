// Package session owns one practice run: the target letter, its normalized
// reference pose, and the score history. Frames flow in through a
// latest-wins intake so a slow pipeline never builds a backlog.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/refs"
)

// ErrNotRunning is returned by operations that require an active session.
var ErrNotRunning = errors.New("session not running")

// ErrAlreadyRunning is returned by Start on an active session.
var ErrAlreadyRunning = errors.New("session already running")

// Config holds session configuration.
type Config struct {
	Library   *refs.Library
	Presenter Presenter
	Scoring   pose.Options
}

// Session scores live landmark frames against one target letter.
// The score history is owned exclusively by the session: it is cleared when
// the target letter changes and when the session stops.
type Session struct {
	config Config

	mu         sync.RWMutex
	id         string
	letter     string
	reference  landmark.Set // normalized once at Start/SetLetter
	generation uint64       // bumped on every reference change
	scorer     *pose.Scorer
	frames     chan landmark.Set
	stopCh     chan struct{}
	done       chan struct{}
	running    bool

	// afterAlign, when set, runs between alignment and the history
	// append. Tests use it to interleave letter switches.
	afterAlign func()
}

// New creates a Session. A nil presenter defaults to a no-op.
func New(config Config) *Session {
	if config.Presenter == nil {
		config.Presenter = nopPresenter{}
	}
	return &Session{
		config: config,
		scorer: pose.NewScorer(config.Scoring),
	}
}

// Start begins a practice run for the given target letter. The reference
// pose is looked up and normalized once; an unknown letter is surfaced as
// refs.ErrNoReferenceData (and to the presenter) rather than substituted.
func (s *Session) Start(letter string) error {
	reference, err := s.lookupNormalized(letter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	s.id = uuid.New().String()
	s.letter = letter
	s.reference = reference
	s.generation++
	s.scorer.Reset()
	s.frames = make(chan landmark.Set, 1)
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	go s.run(s.frames, s.stopCh, s.done)

	log.Printf("Practice session %s started for letter %q", s.id, letter)
	return nil
}

// Stop halts frame processing and clears the score history. It is
// idempotent and returns once the processing goroutine has exited; there is
// no in-flight work to cancel beyond the frame currently being scored.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.done
	id := s.id
	s.mu.Unlock()

	<-done
	s.scorer.Reset()
	log.Printf("Practice session %s stopped", id)
}

// SetLetter switches the target letter of a running session and clears the
// history. The new reference is resolved before any state changes, so a
// failed lookup leaves the current letter in place.
func (s *Session) SetLetter(letter string) error {
	reference, err := s.lookupNormalized(letter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	s.letter = letter
	s.reference = reference
	s.generation++
	s.scorer.Reset()
	return nil
}

func (s *Session) lookupNormalized(letter string) (landmark.Set, error) {
	raw, err := s.config.Library.Lookup(letter)
	if err != nil {
		s.config.Presenter.PresentFailure(FailureNoReferenceData)
		return nil, err
	}
	reference, err := pose.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("reference for %q: %w", letter, err)
	}
	return reference, nil
}

// Submit offers a live frame to the session. The intake is latest-wins: a
// newer frame replaces an unprocessed older one, and Submit never blocks
// the producer. Frames offered to a stopped session are discarded.
func (s *Session) Submit(set landmark.Set) {
	s.mu.RLock()
	frames := s.frames
	running := s.running
	s.mu.RUnlock()

	if !running {
		return
	}
	pushLatest(frames, set)
}

// pushLatest delivers set into a capacity-1 channel, displacing any
// undelivered older frame.
func pushLatest(ch chan landmark.Set, set landmark.Set) {
	for {
		select {
		case ch <- set:
			return
		default:
		}
		// Channel full: drop the stale frame and retry
		select {
		case <-ch:
		default:
		}
	}
}

func (s *Session) run(frames chan landmark.Set, stopCh, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return
		case set := <-frames:
			if _, err := s.Evaluate(set); err != nil {
				log.Printf("Frame skipped: %v", err)
			}
		}
	}
}

// errStaleFrame marks a frame that was aligned against a reference the
// session no longer targets.
var errStaleFrame = errors.New("frame predates a letter change")

// Evaluate runs one frame through the Normalize, Align, Score pipeline,
// records the sample and presents it. A failing frame is presented as a
// failure state and never enters the history. A frame scored against a
// reference that was swapped out mid-flight is discarded, so a cleared
// history never picks up samples from the previous letter.
func (s *Session) Evaluate(set landmark.Set) (pose.Sample, error) {
	s.mu.RLock()
	reference := s.reference
	generation := s.generation
	running := s.running
	s.mu.RUnlock()

	if !running || reference == nil {
		return pose.Sample{}, ErrNotRunning
	}

	live, err := pose.Normalize(set)
	if err != nil {
		if errors.Is(err, pose.ErrDegenerateInput) {
			s.config.Presenter.PresentFailure(FailureDegenerateInput)
		}
		return pose.Sample{}, err
	}

	alignment, err := pose.Align(live, reference)
	if err != nil {
		return pose.Sample{}, err
	}

	if s.afterAlign != nil {
		s.afterAlign()
	}

	// Append under the read lock so a concurrent Start/SetLetter either
	// waits (and then clears the history) or has already bumped the
	// generation, in which case the stale sample is dropped.
	s.mu.RLock()
	if !s.running || s.generation != generation {
		s.mu.RUnlock()
		return pose.Sample{}, errStaleFrame
	}
	sample := s.scorer.Evaluate(alignment.RMS)
	s.mu.RUnlock()

	s.config.Presenter.Present(sample)
	return sample, nil
}

// ID returns the current run's identifier, empty when stopped.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return ""
	}
	return s.id
}

// Letter returns the current target letter.
func (s *Session) Letter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.letter
}

// Running reports whether the session is accepting frames.
func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// History returns a consistent snapshot of the score history, oldest first.
func (s *Session) History() []pose.Sample {
	return s.scorer.History().Snapshot()
}
